package http

import (
	"github.com/rafsal3/VideoGen-v1/internal/auth/service"
)

// Handler handles HTTP requests for registration, login and profile reads.
type Handler struct {
	authService *service.AuthService
}

// New creates a new Handler.
func New(authService *service.AuthService) *Handler {
	return &Handler{authService: authService}
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
