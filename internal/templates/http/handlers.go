package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/rafsal3/VideoGen-v1/internal/auth/middleware"
	"github.com/rafsal3/VideoGen-v1/internal/templates/domain"
	"github.com/rafsal3/VideoGen-v1/internal/templates/service"
)

// Handler handles HTTP requests for the template catalog.
type Handler struct {
	templates *service.TemplateService
}

// New creates a new Handler.
func New(templates *service.TemplateService) *Handler {
	return &Handler{templates: templates}
}

// viewerID returns the authenticated user's DB ID, or "" for anonymous.
func viewerID(c *gin.Context) string {
	if user := authmw.CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

// List returns active templates, optionally filtered by category or search
// query, annotated with the viewer's saved flag.
func (h *Handler) List(c *gin.Context) {
	viewer := viewerID(c)

	if query := c.Query("search"); query != "" {
		items, err := h.templates.Search(c.Request.Context(), viewer, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search templates"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"templates": items})
		return
	}

	items, err := h.templates.List(c.Request.Context(), viewer, c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": items})
}

// Categories lists the distinct categories of active templates.
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.templates.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Get returns a single active template.
func (h *Handler) Get(c *gin.Context) {
	tmpl, err := h.templates.Get(c.Request.Context(), viewerID(c), c.Param("template_id"))
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get template"})
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// Save bookmarks a template for the authenticated user.
func (h *Handler) Save(c *gin.Context) {
	_, err := h.templates.Save(c.Request.Context(), viewerID(c), c.Param("template_id"))
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template saved successfully"})
}

// Unsave removes a template from the authenticated user's saved set.
func (h *Handler) Unsave(c *gin.Context) {
	_, err := h.templates.Unsave(c.Request.Context(), viewerID(c), c.Param("template_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unsave template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template unsaved successfully"})
}

// ListSaved returns the authenticated user's saved templates.
func (h *Handler) ListSaved(c *gin.Context) {
	items, err := h.templates.ListSaved(c.Request.Context(), viewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list saved templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": items})
}
