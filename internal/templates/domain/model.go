package domain

import "time"

// Template is a reusable, parameterized video-generation blueprint.
// Templates are reference data; only the debug surface flips is_active.
type Template struct {
	TemplateID       string               `json:"template_id"`
	Name             string               `json:"name"`
	Description      string               `json:"description,omitempty"`
	Category         string               `json:"category"`
	ParametersSchema map[string]ParamSpec `json:"parameters_schema"`
	PreviewURL       string               `json:"preview_url,omitempty"`
	ThumbnailURL     string               `json:"thumbnail_url,omitempty"`
	DurationSeconds  int                  `json:"duration_seconds,omitempty"`
	Resolution       string               `json:"resolution,omitempty"`
	IsPremium        bool                 `json:"is_premium"`
	IsActive         bool                 `json:"is_active"`
	RenderEngine     string               `json:"render_engine"`
	Tags             []string             `json:"tags"`
	CreatedAt        time.Time            `json:"created_at"`
}

// ParamSpec declares one parameter of a template schema.
type ParamSpec struct {
	Type      string        `json:"type"`
	Required  bool          `json:"required"`
	Default   interface{}   `json:"default,omitempty"`
	MaxLength int           `json:"max_length,omitempty"`
	Min       *float64      `json:"min,omitempty"`
	Max       *float64      `json:"max,omitempty"`
	Options   []string      `json:"options,omitempty"`
}

// AnnotatedTemplate is a template joined with viewer-specific data.
type AnnotatedTemplate struct {
	Template
	IsSaved    bool `json:"is_saved"`
	TotalSaves int  `json:"total_saves"`
}

// StatusSummary reports catalog activation state for the debug surface.
type StatusSummary struct {
	TotalTemplates  int                `json:"total_templates"`
	ActiveTemplates int                `json:"active_templates"`
	Templates       []TemplateActivity `json:"templates"`
}

type TemplateActivity struct {
	TemplateID string `json:"template_id"`
	Name       string `json:"name"`
	IsActive   bool   `json:"is_active"`
}
