package http

import (
	"github.com/rafsal3/VideoGen-v1/internal/projects/service"
)

// Handler handles HTTP requests for project CRUD and the public showcase.
type Handler struct {
	projects *service.ProjectService
}

// New creates a new Handler.
func New(projects *service.ProjectService) *Handler {
	return &Handler{projects: projects}
}

type createReq struct {
	TemplateID    string                 `json:"template_id" binding:"required"`
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	Parameters    map[string]interface{} `json:"parameters"`
	RenderQuality string                 `json:"render_quality"`
}

type updateReq struct {
	Name          *string                `json:"name"`
	Description   *string                `json:"description"`
	Parameters    map[string]interface{} `json:"parameters"`
	RenderQuality *string                `json:"render_quality"`
	IsPublic      *bool                  `json:"is_public"`
}
