package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafsal3/VideoGen-v1/internal/templates/domain"
)

// TemplateAdmin is the catalog surface the debug endpoints need.
type TemplateAdmin interface {
	ActivateAll(ctx context.Context) (int64, error)
	StatusSummary(ctx context.Context) (*domain.StatusSummary, error)
}

// DebugHandler exposes catalog maintenance endpoints. Meant for seeding and
// development environments, not end users.
type DebugHandler struct {
	catalog TemplateAdmin
}

func NewDebugHandler(catalog TemplateAdmin) *DebugHandler {
	return &DebugHandler{catalog: catalog}
}

// ActivateTemplates flips every template active.
func (h *DebugHandler) ActivateTemplates(c *gin.Context) {
	n, err := h.catalog.ActivateAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to activate templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("Activated %d templates", n),
		"modified_count": n,
	})
}

// TemplateStatus reports catalog activation state.
func (h *DebugHandler) TemplateStatus(c *gin.Context) {
	summary, err := h.catalog.StatusSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read template status"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DebugHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/debug/templates/activate", h.ActivateTemplates)
	r.GET("/debug/templates/status", h.TemplateStatus)
}
