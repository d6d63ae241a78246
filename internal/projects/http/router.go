package http

import (
	"github.com/gin-gonic/gin"

	authmw "github.com/rafsal3/VideoGen-v1/internal/auth/middleware"
)

// Register registers the project routes. The showcase is public; everything
// else requires a user.
func (h *Handler) Register(rg *gin.RouterGroup, verifier authmw.TokenVerifier) {
	rg.GET("/showcase", h.Showcase)

	rg.POST("", authmw.RequireUser(verifier), h.Create)
	rg.GET("", authmw.RequireUser(verifier), h.List)
	rg.GET("/:project_id", authmw.OptionalUser(verifier), h.Get)
	rg.PUT("/:project_id", authmw.RequireUser(verifier), h.Update)
	rg.DELETE("/:project_id", authmw.RequireUser(verifier), h.Delete)
}
