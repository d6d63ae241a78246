package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	projdomain "github.com/rafsal3/VideoGen-v1/internal/projects/domain"
	"github.com/rafsal3/VideoGen-v1/internal/render/domain"
	"github.com/rafsal3/VideoGen-v1/internal/render/engine"
	tmpldomain "github.com/rafsal3/VideoGen-v1/internal/templates/domain"
)

// maxRenderDuration is how long a render may stay in flight before the
// reconciler gives up on it.
const maxRenderDuration = 30 * time.Minute

// ProjectStore is the slice of project persistence the dispatcher needs.
// The Mark* methods are guarded transitions: they report false when the
// project was not in the expected source state.
type ProjectStore interface {
	GetByID(ctx context.Context, projectID string) (*projdomain.Project, error)
	MarkProcessing(ctx context.Context, projectID string) (bool, error)
	MarkCompleted(ctx context.Context, projectID string, res projdomain.RenderResult) (bool, error)
	MarkFailed(ctx context.Context, projectID string) (bool, error)
}

// JobStore tracks in-flight renders.
type JobStore interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByProjectID(ctx context.Context, projectID string) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	ListActive(ctx context.Context) ([]string, error)
}

// Engine is the external renderer.
type Engine interface {
	StartJob(ctx context.Context, engineTemplate string, req engine.StartJobRequest) (*engine.StartJobResponse, error)
	CheckReady(ctx context.Context, filename string) (bool, error)
	VideoURL(filename string) string
	ThumbnailURL(filename string) string
}

// TemplateCatalog resolves which engine-side pipeline a template uses.
type TemplateCatalog interface {
	GetActive(ctx context.Context, viewerID, templateID string) (*tmpldomain.AnnotatedTemplate, error)
}

// RenderService owns the render state machine. It is the only component
// that advances a project's render status.
type RenderService struct {
	projects       ProjectStore
	jobs           JobStore
	engine         Engine
	catalog        TemplateCatalog
	log            *logrus.Logger
	callbackURL    string
	callbackSecret string
}

func NewRenderService(
	projects ProjectStore,
	jobs JobStore,
	eng Engine,
	catalog TemplateCatalog,
	log *logrus.Logger,
	callbackURL, callbackSecret string,
) *RenderService {
	return &RenderService{
		projects:       projects,
		jobs:           jobs,
		engine:         eng,
		catalog:        catalog,
		log:            log,
		callbackURL:    callbackURL,
		callbackSecret: callbackSecret,
	}
}

// Start moves an owned draft project into processing and dispatches it to
// the engine. Any non-draft state is a conflict. A failed dispatch marks
// the project failed rather than leaving it stuck in processing.
func (s *RenderService) Start(ctx context.Context, callerID, projectID string) (*projdomain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != callerID {
		return nil, projdomain.ErrNotOwner
	}

	moved, err := s.projects.MarkProcessing(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, projdomain.ErrInvalidTransition
	}

	job := &domain.Job{
		ProjectID:  projectID,
		UserID:     project.UserID,
		TemplateID: project.TemplateID,
		Status:     projdomain.StatusProcessing,
		Quality:    project.RenderQuality,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		s.log.WithError(err).WithField("project_id", projectID).Warn("failed to track render job")
	}

	var callbackURL string
	if s.callbackURL != "" {
		callbackURL = s.callbackURL + "/" + projectID
	} else {
		s.log.Warn("RENDER_CALLBACK_URL not set - engine will not call back on completion")
	}

	resp, err := s.engine.StartJob(ctx, s.engineTemplate(ctx, project), engine.StartJobRequest{
		ProjectID:      projectID,
		Parameters:     project.Parameters,
		Quality:        project.RenderQuality,
		CallbackURL:    callbackURL,
		CallbackSecret: s.callbackSecret,
	})
	if err != nil {
		s.log.WithError(err).WithField("project_id", projectID).Error("render dispatch failed")
		s.failJob(ctx, projectID, err.Error())
		return nil, err
	}

	job.EngineJobID = resp.Filename
	if err := s.jobs.Update(ctx, job); err != nil {
		s.log.WithError(err).WithField("project_id", projectID).Warn("failed to record engine job id")
	}

	s.log.WithFields(logrus.Fields{
		"project_id":    projectID,
		"engine_job_id": resp.Filename,
	}).Info("render dispatched")

	return s.projects.GetByID(ctx, projectID)
}

// Status returns the project whose render state the caller may see: the
// owner always, anyone for public projects.
func (s *RenderService) Status(ctx context.Context, callerID, projectID string) (*projdomain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != callerID && !project.IsPublic {
		return nil, projdomain.ErrNotOwner
	}
	return project, nil
}

// HandleCallback records the engine's completion report. Terminal states
// are sticky: a late or duplicate callback affects zero rows and is
// acknowledged without changing anything.
func (s *RenderService) HandleCallback(ctx context.Context, projectID string, res domain.CallbackResult) error {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return err
	}

	var moved bool
	var err error

	if res.Success {
		moved, err = s.projects.MarkCompleted(ctx, projectID, projdomain.RenderResult{
			VideoURL:        res.VideoURL,
			ThumbnailURL:    res.ThumbnailURL,
			DurationSeconds: res.DurationSeconds,
			FileSizeMB:      res.FileSizeMB,
		})
	} else {
		moved, err = s.projects.MarkFailed(ctx, projectID)
	}
	if err != nil {
		return err
	}
	if !moved {
		s.log.WithField("project_id", projectID).Info("ignoring callback for non-processing project")
		return nil
	}

	status := projdomain.StatusCompleted
	if !res.Success {
		status = projdomain.StatusFailed
	}

	if job, jerr := s.jobs.GetByProjectID(ctx, projectID); jerr == nil {
		now := time.Now()
		job.Status = status
		job.CompletedAt = &now
		if res.Error != "" {
			if job.Metadata == nil {
				job.Metadata = map[string]interface{}{}
			}
			job.Metadata["error"] = res.Error
		}
		if uerr := s.jobs.Update(ctx, job); uerr != nil {
			s.log.WithError(uerr).WithField("project_id", projectID).Warn("failed to finalize render job")
		}
	}

	s.log.WithFields(logrus.Fields{"project_id": projectID, "status": status}).Info("render finished")
	return nil
}

// Reconcile sweeps in-flight jobs whose callback never arrived: artifacts
// already downloadable are completed, jobs past the deadline are failed.
// Run periodically from the cron scheduler.
func (s *RenderService) Reconcile(ctx context.Context) {
	ids, err := s.jobs.ListActive(ctx)
	if err != nil {
		s.log.WithError(err).Error("reconcile: failed to list active jobs")
		return
	}

	for _, projectID := range ids {
		job, err := s.jobs.GetByProjectID(ctx, projectID)
		if err != nil {
			continue
		}

		if job.EngineJobID != "" {
			ready, err := s.engine.CheckReady(ctx, job.EngineJobID)
			if err == nil && ready {
				s.log.WithField("project_id", projectID).Info("reconcile: artifact ready, completing")
				_ = s.HandleCallback(ctx, projectID, domain.CallbackResult{
					Success:      true,
					VideoURL:     s.engine.VideoURL(job.EngineJobID),
					ThumbnailURL: s.engine.ThumbnailURL(job.EngineJobID),
				})
				continue
			}
		}

		if time.Since(job.StartedAt) > maxRenderDuration {
			s.log.WithField("project_id", projectID).Warn("reconcile: render deadline exceeded, failing")
			_ = s.HandleCallback(ctx, projectID, domain.CallbackResult{
				Success: false,
				Error:   "render deadline exceeded",
			})
		}
	}
}

// CallbackSecret exposes the configured shared secret for the HTTP layer.
func (s *RenderService) CallbackSecret() string {
	return s.callbackSecret
}

// engineTemplate resolves the engine pipeline for a project's template,
// falling back to the default pipeline when the catalog cannot answer.
func (s *RenderService) engineTemplate(ctx context.Context, project *projdomain.Project) string {
	tmpl, err := s.catalog.GetActive(ctx, project.UserID, project.TemplateID)
	if err != nil || tmpl.RenderEngine == "" {
		return "default"
	}
	return tmpl.RenderEngine
}

// failJob marks the project failed and finalizes the tracking record after
// a dispatch error.
func (s *RenderService) failJob(ctx context.Context, projectID, reason string) {
	if _, err := s.projects.MarkFailed(ctx, projectID); err != nil {
		s.log.WithError(err).WithField("project_id", projectID).Error("failed to mark project failed")
	}
	if job, err := s.jobs.GetByProjectID(ctx, projectID); err == nil {
		now := time.Now()
		job.Status = projdomain.StatusFailed
		job.CompletedAt = &now
		if job.Metadata == nil {
			job.Metadata = map[string]interface{}{}
		}
		job.Metadata["error"] = reason
		_ = s.jobs.Update(ctx, job)
	}
}
