package domain

import "time"

// Job is the live tracking record for one render, kept in Redis while the
// external engine works. The project row in Postgres stays the durable
// source of truth; the job carries the engine mapping and event stream.
type Job struct {
	ProjectID   string                 `json:"project_id"`
	UserID      string                 `json:"user_id"`
	TemplateID  string                 `json:"template_id"`
	EngineJobID string                 `json:"engine_job_id"` // filename handle from the render engine
	Status      string                 `json:"status"`        // mirrors the project render status
	Quality     string                 `json:"render_quality"`
	StartedAt   time.Time              `json:"started_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// CallbackResult is what the engine reports when a render finishes.
type CallbackResult struct {
	Success         bool
	VideoURL        string
	ThumbnailURL    string
	DurationSeconds int
	FileSizeMB      float64
	Error           string
}
