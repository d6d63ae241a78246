package domain

import "time"

// Render lifecycle states. Transitions are monotonic:
// draft -> processing -> completed | failed.
const (
	StatusDraft      = "draft"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Render quality tiers.
const (
	QualityLow    = "480p"
	QualityMedium = "720p"
	QualityHigh   = "1080p"
	QualityUltra  = "4k"
)

// ValidStatus reports whether s names a known lifecycle state.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusProcessing || s == StatusCompleted || s == StatusFailed
}

// ValidQuality reports whether q names a known quality tier.
func ValidQuality(q string) bool {
	return q == QualityLow || q == QualityMedium || q == QualityHigh || q == QualityUltra
}

// Terminal reports whether s is an end state of the render lifecycle.
func Terminal(s string) bool {
	return s == StatusCompleted || s == StatusFailed
}

// Project binds a template to concrete parameter values owned by one user.
type Project struct {
	ProjectID         string                 `json:"project_id"`
	UserID            string                 `json:"user_id,omitempty"`
	TemplateID        string                 `json:"template_id"`
	Name              string                 `json:"name"`
	Description       string                 `json:"description,omitempty"`
	Parameters        map[string]interface{} `json:"parameters"`
	Status            string                 `json:"status"`
	RenderQuality     string                 `json:"render_quality"`
	VideoURL          string                 `json:"video_url,omitempty"`
	ThumbnailURL      string                 `json:"thumbnail_url,omitempty"`
	DurationSeconds   int                    `json:"duration_seconds,omitempty"`
	FileSizeMB        float64                `json:"file_size_mb,omitempty"`
	RenderStartedAt   *time.Time             `json:"render_started_at,omitempty"`
	RenderCompletedAt *time.Time             `json:"render_completed_at,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	IsPublic          bool                   `json:"is_public"`

	// TemplateInfo is filled on reads that join the catalog.
	TemplateInfo *TemplateInfo `json:"template_info,omitempty"`
}

// TemplateInfo is the minimal catalog data joined onto project reads.
type TemplateInfo struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// CreateRequest carries the fields needed to create a project.
type CreateRequest struct {
	UserID        string
	TemplateID    string
	Name          string
	Description   string
	Parameters    map[string]interface{}
	RenderQuality string
}

// UpdateRequest carries optional mutations; nil fields are left untouched.
type UpdateRequest struct {
	Name          *string
	Description   *string
	Parameters    map[string]interface{}
	RenderQuality *string
	IsPublic      *bool
}

// RenderResult is the artifact metadata recorded on completion.
type RenderResult struct {
	VideoURL        string
	ThumbnailURL    string
	DurationSeconds int
	FileSizeMB      float64
}
