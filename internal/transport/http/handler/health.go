package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	resp "go-admin-console/internal/transport/http/response"
)

type HealthHandler struct {
	App string
	Env string
}

// Health is the liveness surface; it must answer regardless of storage
// availability.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"app":    h.App,
		"env":    h.Env,
	}))
}
