package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/rafsal3/VideoGen-v1/internal/auth/middleware"
	projdomain "github.com/rafsal3/VideoGen-v1/internal/projects/domain"
	"github.com/rafsal3/VideoGen-v1/internal/render/domain"
	"github.com/rafsal3/VideoGen-v1/internal/render/service"
)

// Handler handles render start, status polling and engine callbacks.
type Handler struct {
	renders *service.RenderService
}

// New creates a new Handler.
func New(renders *service.RenderService) *Handler {
	return &Handler{renders: renders}
}

func callerID(c *gin.Context) string {
	if user := authmw.CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

// Start begins rendering a draft project.
func (h *Handler) Start(c *gin.Context) {
	projectID := c.Param("project_id")

	project, err := h.renders.Start(c.Request.Context(), callerID(c), projectID)
	if err != nil {
		switch {
		case errors.Is(err, projdomain.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, projdomain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "project belongs to another user"})
		case errors.Is(err, projdomain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "project is not in draft state"})
		case errors.Is(err, domain.ErrEngineUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "render engine unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start render"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Render job started",
		"project_id": project.ProjectID,
		"status":     project.Status,
	})
}

// Status reports the render state of a project, including artifact
// metadata once terminal.
func (h *Handler) Status(c *gin.Context) {
	projectID := c.Param("project_id")

	project, err := h.renders.Status(c.Request.Context(), callerID(c), projectID)
	if err != nil {
		switch {
		case errors.Is(err, projdomain.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, projdomain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "project belongs to another user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get render status"})
		}
		return
	}

	resp := gin.H{
		"project_id":          project.ProjectID,
		"status":              project.Status,
		"render_started_at":   project.RenderStartedAt,
		"render_completed_at": project.RenderCompletedAt,
	}
	if projdomain.Terminal(project.Status) {
		resp["video_url"] = project.VideoURL
		resp["thumbnail_url"] = project.ThumbnailURL
		resp["duration_seconds"] = project.DurationSeconds
		resp["file_size_mb"] = project.FileSizeMB
	}
	c.JSON(http.StatusOK, resp)
}

type callbackBody struct {
	Success         bool    `json:"success"`
	VideoURL        string  `json:"video_url"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	DurationSeconds int     `json:"duration_seconds"`
	FileSizeMB      float64 `json:"file_size_mb"`
	Error           string  `json:"error"`
}

// Callback handles the engine's completion report. Authenticated with the
// shared secret header when one is configured.
func (h *Handler) Callback(c *gin.Context) {
	if secret := h.renders.CallbackSecret(); secret != "" {
		provided := c.GetHeader("X-Render-Callback-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: invalid callback secret"})
			return
		}
	}

	projectID := c.Param("project_id")

	var body callbackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	err := h.renders.HandleCallback(c.Request.Context(), projectID, domain.CallbackResult{
		Success:         body.Success,
		VideoURL:        body.VideoURL,
		ThumbnailURL:    body.ThumbnailURL,
		DurationSeconds: body.DurationSeconds,
		FileSizeMB:      body.FileSizeMB,
		Error:           body.Error,
	})
	if err != nil {
		if errors.Is(err, projdomain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process callback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "callback processed", "project_id": projectID})
}
