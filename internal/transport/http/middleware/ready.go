package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-console/internal/core/bootstrap"
)

// EnsureReady gates routes that need storage behind the bootstrap guard.
// In degraded mode every request retries initialization; until it
// succeeds the user sees the error view while /healthz stays up.
func EnsureReady(g *bootstrap.Guard, l *zap.Logger, devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := g.Ensure(c.Request.Context()); err != nil {
			l.Error("storage initialization failed", zap.Error(err))
			detail := ""
			if devMode {
				detail = err.Error()
			}
			c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{
				"Message": "Service is temporarily unavailable. Please try again.",
				"Detail":  detail,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
