package http

import (
	"github.com/gin-gonic/gin"

	authmw "github.com/rafsal3/VideoGen-v1/internal/auth/middleware"
)

// Register registers the catalog routes. Listings work anonymously; the
// bookmark routes require a user.
func (h *Handler) Register(rg *gin.RouterGroup, verifier authmw.TokenVerifier) {
	rg.GET("", authmw.OptionalUser(verifier), h.List)
	rg.GET("/categories", h.Categories)
	rg.GET("/saved", authmw.RequireUser(verifier), h.ListSaved)
	rg.GET("/:template_id", authmw.OptionalUser(verifier), h.Get)
	rg.POST("/:template_id/save", authmw.RequireUser(verifier), h.Save)
	rg.DELETE("/:template_id/save", authmw.RequireUser(verifier), h.Unsave)
}
