package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-admin-console/internal/core/session"
)

// KeyUser is the context key holding the authenticated *user.Profile.
const KeyUser = "user"

// RequireLogin resolves the session cookie and puts the profile on the
// context. Anything short of a valid live session redirects to /login.
func RequireLogin(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(m.CookieName)
		if err != nil {
			toLogin(c)
			return
		}
		p, err := m.Resolve(c.Request.Context(), cookie)
		if err != nil || p == nil {
			toLogin(c)
			return
		}
		c.Set(KeyUser, p)
		c.Next()
	}
}

// RedirectIfAuthed sends logged-in users from the login page to the
// dashboard.
func RedirectIfAuthed(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(m.CookieName); err == nil {
			if p, err := m.Resolve(c.Request.Context(), cookie); err == nil && p != nil {
				c.Redirect(http.StatusFound, "/dashboard")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

func toLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
