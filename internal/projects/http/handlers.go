package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/rafsal3/VideoGen-v1/internal/auth/middleware"
	"github.com/rafsal3/VideoGen-v1/internal/projects/domain"
	tmpldomain "github.com/rafsal3/VideoGen-v1/internal/templates/domain"
	"github.com/rafsal3/VideoGen-v1/internal/templates/schema"
)

func callerID(c *gin.Context) string {
	if user := authmw.CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

// writeProjectErr maps domain errors to HTTP statuses.
func writeProjectErr(c *gin.Context, err error) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters", "fields": verr.Fields})
	case errors.Is(err, tmpldomain.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "project belongs to another user"})
	case errors.Is(err, domain.ErrInvalidQuality):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid render quality"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Create creates a new draft project for the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), domain.CreateRequest{
		UserID:        callerID(c),
		TemplateID:    req.TemplateID,
		Name:          req.Name,
		Description:   req.Description,
		Parameters:    req.Parameters,
		RenderQuality: req.RenderQuality,
	})
	if err != nil {
		writeProjectErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Project created successfully",
		"project_id": project.ProjectID,
		"project":    project,
	})
}

// List returns the authenticated user's projects.
func (h *Handler) List(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context(), callerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

// Get returns one project: the owner's own, or anyone's public one.
func (h *Handler) Get(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), callerID(c), c.Param("project_id"))
	if err != nil {
		writeProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Update mutates an owned project.
func (h *Handler) Update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	project, err := h.projects.Update(c.Request.Context(), callerID(c), c.Param("project_id"), domain.UpdateRequest{
		Name:          req.Name,
		Description:   req.Description,
		Parameters:    req.Parameters,
		RenderQuality: req.RenderQuality,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		writeProjectErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project updated successfully", "project": project})
}

// Delete removes an owned project.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), callerID(c), c.Param("project_id")); err != nil {
		writeProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// Showcase returns public completed projects. No authentication required.
func (h *Handler) Showcase(c *gin.Context) {
	items, err := h.projects.Showcase(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list showcase"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}
