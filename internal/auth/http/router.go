package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rafsal3/VideoGen-v1/internal/auth/middleware"
)

// Register registers the auth routes. loginLimiter guards the login
// endpoint against credential stuffing.
func (h *Handler) Register(rg *gin.RouterGroup, loginLimiter gin.HandlerFunc) {
	rg.POST("/register", h.RegisterUser)
	rg.POST("/login", loginLimiter, h.Login)
	rg.GET("/me", middleware.RequireUser(h.authService), h.Me)
}
