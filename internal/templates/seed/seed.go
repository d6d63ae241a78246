package seed

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rafsal3/VideoGen-v1/internal/templates/domain"
)

// Catalog is the persistence surface the seeder needs.
type Catalog interface {
	Count(ctx context.Context) (total, active int, err error)
	Insert(ctx context.Context, t *domain.Template) error
	ActivateAll(ctx context.Context) (int64, error)
}

// Run populates the catalog with the sample templates when it is empty, and
// re-activates existing templates when none are active. Safe to call on
// every startup.
func Run(ctx context.Context, catalog Catalog, log *logrus.Logger) error {
	total, active, err := catalog.Count(ctx)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"total": total, "active": active}).Info("template catalog state")

	if total == 0 {
		for i := range sampleTemplates {
			if err := catalog.Insert(ctx, &sampleTemplates[i]); err != nil {
				return err
			}
		}
		log.WithField("count", len(sampleTemplates)).Info("seeded sample templates")
		return nil
	}

	if active == 0 {
		n, err := catalog.ActivateAll(ctx)
		if err != nil {
			return err
		}
		log.WithField("count", n).Info("activated existing templates")
	}
	return nil
}

func f(v float64) *float64 { return &v }

var sampleTemplates = []domain.Template{
	{
		TemplateID:  "tmpl-newspaper",
		Name:        "Breaking News Template",
		Description: "Classic newspaper style breaking news template",
		Category:    "News",
		ParametersSchema: map[string]domain.ParamSpec{
			"headline":      {Type: "string", Required: true, MaxLength: 100},
			"subheadline":   {Type: "string", Required: true, MaxLength: 200},
			"image_url":     {Type: "url", Required: true},
			"theme_color":   {Type: "color", Required: true, Default: "#FF0000"},
			"reporter_name": {Type: "string", Default: "News Team"},
		},
		PreviewURL:      "https://example.com/preview-newspaper.mp4",
		ThumbnailURL:    "https://example.com/thumb-newspaper.jpg",
		DurationSeconds: 30,
		Resolution:      "1920x1080",
		IsActive:        true,
		RenderEngine:    "news_engine",
		Tags:            []string{"news", "breaking", "broadcast", "professional"},
	},
	{
		TemplateID:  "tmpl-social-story",
		Name:        "Social Media Story",
		Description: "Trendy social media story template with animations",
		Category:    "Social",
		ParametersSchema: map[string]domain.ParamSpec{
			"text":             {Type: "string", Required: true, MaxLength: 150},
			"background_image": {Type: "url", Required: true},
			"overlay_color":    {Type: "color", Required: true, Default: "#000000"},
			"opacity":          {Type: "number", Required: true, Min: f(0.0), Max: f(1.0), Default: 0.5},
			"font_style":       {Type: "enum", Options: []string{"modern", "classic", "bold"}, Default: "modern"},
		},
		PreviewURL:      "https://example.com/preview-social.mp4",
		ThumbnailURL:    "https://example.com/thumb-social.jpg",
		DurationSeconds: 15,
		Resolution:      "1080x1920",
		IsActive:        true,
		RenderEngine:    "social_engine",
		Tags:            []string{"social", "story", "instagram", "trendy", "vertical"},
	},
	{
		TemplateID:  "tmpl-corporate-intro",
		Name:        "Corporate Introduction",
		Description: "Professional corporate introduction template with modern design",
		Category:    "Business",
		ParametersSchema: map[string]domain.ParamSpec{
			"company_name":    {Type: "string", Required: true, MaxLength: 100},
			"tagline":         {Type: "string", Required: true, MaxLength: 200},
			"logo_url":        {Type: "url", Required: true},
			"primary_color":   {Type: "color", Required: true, Default: "#0066CC"},
			"secondary_color": {Type: "color", Required: true, Default: "#FFFFFF"},
			"animation_style": {Type: "enum", Options: []string{"fade", "slide", "zoom"}, Default: "fade"},
		},
		PreviewURL:      "https://example.com/preview-corporate.mp4",
		ThumbnailURL:    "https://example.com/thumb-corporate.jpg",
		DurationSeconds: 20,
		Resolution:      "1920x1080",
		IsPremium:       true,
		IsActive:        true,
		RenderEngine:    "corporate_engine",
		Tags:            []string{"corporate", "business", "professional", "introduction", "modern"},
	},
	{
		TemplateID:  "tmpl-wedding-announcement",
		Name:        "Wedding Announcement",
		Description: "Elegant wedding announcement template with romantic styling",
		Category:    "Events",
		ParametersSchema: map[string]domain.ParamSpec{
			"bride_name":       {Type: "string", Required: true, MaxLength: 50},
			"groom_name":       {Type: "string", Required: true, MaxLength: 50},
			"wedding_date":     {Type: "date", Required: true},
			"venue":            {Type: "string", Required: true, MaxLength: 100},
			"theme_color":      {Type: "color", Required: true, Default: "#FFD700"},
			"background_image": {Type: "url", Required: true},
			"music_style":      {Type: "enum", Options: []string{"romantic", "classical", "modern"}, Default: "romantic"},
		},
		PreviewURL:      "https://example.com/preview-wedding.mp4",
		ThumbnailURL:    "https://example.com/thumb-wedding.jpg",
		DurationSeconds: 25,
		Resolution:      "1920x1080",
		IsActive:        true,
		RenderEngine:    "wedding_engine",
		Tags:            []string{"wedding", "romantic", "elegant", "celebration", "love"},
	},
}
