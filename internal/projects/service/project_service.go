package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rafsal3/VideoGen-v1/internal/projects/domain"
	tmpldomain "github.com/rafsal3/VideoGen-v1/internal/templates/domain"
	"github.com/rafsal3/VideoGen-v1/internal/templates/schema"
)

const showcaseLimit = 20

// ProjectStore is the persistence surface the project service needs.
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	ListShowcase(ctx context.Context, limit int) ([]domain.Project, error)
	Update(ctx context.Context, projectID string, req domain.UpdateRequest) error
	Delete(ctx context.Context, projectID string) error
}

// TemplateCatalog resolves the template a project binds to.
type TemplateCatalog interface {
	GetActive(ctx context.Context, viewerID, templateID string) (*tmpldomain.AnnotatedTemplate, error)
}

// ProjectService owns project CRUD, parameter validation and access rules.
type ProjectService struct {
	store   ProjectStore
	catalog TemplateCatalog
	log     *logrus.Logger
}

func NewProjectService(store ProjectStore, catalog TemplateCatalog, log *logrus.Logger) *ProjectService {
	return &ProjectService{store: store, catalog: catalog, log: log}
}

// Create validates the parameters against the template schema and persists
// a new draft project. Defaults for omitted optional parameters are
// persisted with the project.
func (s *ProjectService) Create(ctx context.Context, req domain.CreateRequest) (*domain.Project, error) {
	quality := req.RenderQuality
	if quality == "" {
		quality = domain.QualityHigh
	}
	if !domain.ValidQuality(quality) {
		return nil, domain.ErrInvalidQuality
	}

	tmpl, err := s.catalog.GetActive(ctx, req.UserID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	params := req.Parameters
	if params == nil {
		params = map[string]interface{}{}
	}
	validated, err := schema.Validate(tmpl.ParametersSchema, params)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		UserID:        req.UserID,
		TemplateID:    req.TemplateID,
		Name:          req.Name,
		Description:   req.Description,
		Parameters:    validated,
		RenderQuality: quality,
	}
	if err := s.store.Create(ctx, project); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"project_id":  project.ProjectID,
		"template_id": project.TemplateID,
		"user_id":     project.UserID,
	}).Info("project created")
	return project, nil
}

// Get returns a project the caller may read: the owner always, anyone for
// public projects. Public reads hide the owning user.
func (s *ProjectService) Get(ctx context.Context, callerID, projectID string) (*domain.Project, error) {
	project, err := s.store.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.UserID == callerID {
		return project, nil
	}
	if project.IsPublic {
		project.UserID = ""
		return project, nil
	}
	return nil, domain.ErrNotOwner
}

// List returns the caller's projects, newest first.
func (s *ProjectService) List(ctx context.Context, callerID string) ([]domain.Project, error) {
	return s.store.ListByUser(ctx, callerID)
}

// Showcase returns public completed projects with owners hidden.
func (s *ProjectService) Showcase(ctx context.Context) ([]domain.Project, error) {
	items, err := s.store.ListShowcase(ctx, showcaseLimit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].UserID = ""
	}
	return items, nil
}

// Update mutates an owned project. Public projects stay read-only to
// everyone but their owner. Parameter updates are re-validated against the
// template schema; the render status is never touched here.
func (s *ProjectService) Update(ctx context.Context, callerID, projectID string, req domain.UpdateRequest) (*domain.Project, error) {
	project, err := s.store.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != callerID {
		return nil, domain.ErrNotOwner
	}

	if req.RenderQuality != nil && !domain.ValidQuality(*req.RenderQuality) {
		return nil, domain.ErrInvalidQuality
	}

	if req.Parameters != nil {
		tmpl, err := s.catalog.GetActive(ctx, callerID, project.TemplateID)
		if err != nil {
			return nil, err
		}
		validated, err := schema.Validate(tmpl.ParametersSchema, req.Parameters)
		if err != nil {
			return nil, err
		}
		req.Parameters = validated
	}

	if err := s.store.Update(ctx, projectID, req); err != nil {
		return nil, err
	}

	s.log.WithField("project_id", projectID).Info("project updated")
	return s.store.GetByID(ctx, projectID)
}

// Delete removes an owned project.
func (s *ProjectService) Delete(ctx context.Context, callerID, projectID string) error {
	project, err := s.store.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.UserID != callerID {
		return domain.ErrNotOwner
	}

	if err := s.store.Delete(ctx, projectID); err != nil {
		return err
	}
	s.log.WithField("project_id", projectID).Info("project deleted")
	return nil
}
