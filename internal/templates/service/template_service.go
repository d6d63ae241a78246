package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rafsal3/VideoGen-v1/internal/templates/domain"
)

// TemplateStore is the persistence surface the catalog service needs.
type TemplateStore interface {
	ListActive(ctx context.Context, viewerID, category string) ([]domain.AnnotatedTemplate, error)
	Search(ctx context.Context, viewerID, query string) ([]domain.AnnotatedTemplate, error)
	ListSaved(ctx context.Context, viewerID string) ([]domain.AnnotatedTemplate, error)
	GetActive(ctx context.Context, viewerID, templateID string) (*domain.AnnotatedTemplate, error)
	Categories(ctx context.Context) ([]string, error)
	Save(ctx context.Context, userID, templateID string) (bool, error)
	Unsave(ctx context.Context, userID, templateID string) (bool, error)
}

// TemplateService exposes the read-mostly catalog plus per-user bookmarks.
type TemplateService struct {
	store TemplateStore
	log   *logrus.Logger
}

func NewTemplateService(store TemplateStore, log *logrus.Logger) *TemplateService {
	return &TemplateService{store: store, log: log}
}

// List returns active templates annotated for the viewer. viewerID may be
// empty for anonymous browsing; category narrows the listing when set.
func (s *TemplateService) List(ctx context.Context, viewerID, category string) ([]domain.AnnotatedTemplate, error) {
	return s.store.ListActive(ctx, viewerID, category)
}

// Search matches active templates by name, description or tag.
func (s *TemplateService) Search(ctx context.Context, viewerID, query string) ([]domain.AnnotatedTemplate, error) {
	return s.store.Search(ctx, viewerID, query)
}

// Get retrieves one active template.
func (s *TemplateService) Get(ctx context.Context, viewerID, templateID string) (*domain.AnnotatedTemplate, error) {
	return s.store.GetActive(ctx, viewerID, templateID)
}

// Categories lists the distinct active categories.
func (s *TemplateService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

// ListSaved returns the viewer's saved templates.
func (s *TemplateService) ListSaved(ctx context.Context, viewerID string) ([]domain.AnnotatedTemplate, error) {
	return s.store.ListSaved(ctx, viewerID)
}

// Save bookmarks a template for the user. Saving an already-saved template
// is a no-op; the reported flag says whether the set actually changed.
func (s *TemplateService) Save(ctx context.Context, userID, templateID string) (bool, error) {
	if _, err := s.store.GetActive(ctx, userID, templateID); err != nil {
		return false, err
	}

	added, err := s.store.Save(ctx, userID, templateID)
	if err != nil {
		return false, err
	}
	if added {
		s.log.WithFields(logrus.Fields{"user_id": userID, "template_id": templateID}).Info("template saved")
	}
	return added, nil
}

// Unsave removes a template from the user's saved set. Removing a template
// that was never saved is a no-op.
func (s *TemplateService) Unsave(ctx context.Context, userID, templateID string) (bool, error) {
	removed, err := s.store.Unsave(ctx, userID, templateID)
	if err != nil {
		return false, err
	}
	if removed {
		s.log.WithFields(logrus.Fields{"user_id": userID, "template_id": templateID}).Info("template unsaved")
	}
	return removed, nil
}
