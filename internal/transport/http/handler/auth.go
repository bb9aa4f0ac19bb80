package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-console/internal/core/session"
	"go-admin-console/internal/feature/user"
)

type AuthHandler struct {
	Users    *user.Module
	Sessions *session.Manager
	Log      *zap.Logger
}

func NewAuthHandler(users *user.Module, sessions *session.Manager, l *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions, Log: l}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	p, err := h.Users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		h.Log.Error("login failed", zap.String("username", username), zap.Error(err))
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Login failed. Please try again.",
			"Username": username,
		})
		return
	}
	if p == nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Invalid username or password",
			"Username": username,
		})
		return
	}

	cookie, err := h.Sessions.Issue(c.Request.Context(), *p)
	if err != nil {
		h.Log.Error("session issue failed", zap.Error(err))
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Login failed. Please try again.",
			"Username": username,
		})
		return
	}

	c.SetCookie(h.Sessions.CookieName, cookie, int(h.Sessions.TTL().Seconds()), "/", "", h.Sessions.Secure, true)
	redirect(c, "/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.Sessions.CookieName); err == nil {
		if err := h.Sessions.Revoke(c.Request.Context(), cookie); err != nil {
			h.Log.Warn("session revoke failed", zap.Error(err))
		}
	}
	c.SetCookie(h.Sessions.CookieName, "", -1, "/", "", h.Sessions.Secure, true)
	redirect(c, "/login")
}
