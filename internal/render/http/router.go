package http

import (
	"github.com/gin-gonic/gin"

	authmw "github.com/rafsal3/VideoGen-v1/internal/auth/middleware"
)

// RegisterProjectRoutes mounts the user-facing render routes on the
// projects group.
func (h *Handler) RegisterProjectRoutes(rg *gin.RouterGroup, verifier authmw.TokenVerifier) {
	rg.POST("/:project_id/render", authmw.RequireUser(verifier), h.Start)
	rg.GET("/:project_id/status", authmw.OptionalUser(verifier), h.Status)
}

// RegisterCallbackRoutes mounts the engine-facing callback endpoint. The
// engine authenticates with the shared secret, not a bearer token.
func (h *Handler) RegisterCallbackRoutes(rg *gin.RouterGroup) {
	rg.POST("/callback/:project_id", h.Callback)
}
