package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-admin-console/internal/feature/user"
	mdw "go-admin-console/internal/transport/http/middleware"
)

// currentUser returns the profile RequireLogin stored on the context, or
// nil on public routes.
func currentUser(c *gin.Context) *user.Profile {
	if v, ok := c.Get(mdw.KeyUser); ok {
		if p, ok := v.(*user.Profile); ok {
			return p
		}
	}
	return nil
}

// renderError shows the generic failure view; internals leak only in
// development mode.
func renderError(c *gin.Context, status int, msg string, err error, dev bool) {
	detail := ""
	if dev && err != nil {
		detail = err.Error()
	}
	c.HTML(status, "error.html", gin.H{
		"User":    currentUser(c),
		"Message": msg,
		"Detail":  detail,
	})
}

func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusFound, to)
}
