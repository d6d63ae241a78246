package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	projdomain "github.com/rafsal3/VideoGen-v1/internal/projects/domain"
	"github.com/rafsal3/VideoGen-v1/internal/render/domain"
	"github.com/rafsal3/VideoGen-v1/internal/render/engine"
	"github.com/rafsal3/VideoGen-v1/internal/render/service"
	tmpldomain "github.com/rafsal3/VideoGen-v1/internal/templates/domain"
)

type stubProjects struct {
	statuses map[string]string
}

func (s *stubProjects) GetByID(ctx context.Context, projectID string) (*projdomain.Project, error) {
	status, ok := s.statuses[projectID]
	if !ok {
		return nil, projdomain.ErrProjectNotFound
	}
	return &projdomain.Project{ProjectID: projectID, UserID: "owner", Status: status}, nil
}

func (s *stubProjects) move(projectID, from, to string) bool {
	if s.statuses[projectID] != from {
		return false
	}
	s.statuses[projectID] = to
	return true
}

func (s *stubProjects) MarkProcessing(ctx context.Context, projectID string) (bool, error) {
	return s.move(projectID, projdomain.StatusDraft, projdomain.StatusProcessing), nil
}

func (s *stubProjects) MarkCompleted(ctx context.Context, projectID string, res projdomain.RenderResult) (bool, error) {
	return s.move(projectID, projdomain.StatusProcessing, projdomain.StatusCompleted), nil
}

func (s *stubProjects) MarkFailed(ctx context.Context, projectID string) (bool, error) {
	return s.move(projectID, projdomain.StatusProcessing, projdomain.StatusFailed), nil
}

type stubJobs struct{}

func (stubJobs) Create(ctx context.Context, job *domain.Job) error { return nil }
func (stubJobs) GetByProjectID(ctx context.Context, projectID string) (*domain.Job, error) {
	return nil, domain.ErrJobNotFound
}
func (stubJobs) Update(ctx context.Context, job *domain.Job) error { return nil }
func (stubJobs) ListActive(ctx context.Context) ([]string, error)  { return nil, nil }

type stubEngine struct{}

func (stubEngine) StartJob(ctx context.Context, engineTemplate string, req engine.StartJobRequest) (*engine.StartJobResponse, error) {
	return &engine.StartJobResponse{Filename: req.ProjectID + ".mp4"}, nil
}
func (stubEngine) CheckReady(ctx context.Context, filename string) (bool, error) {
	return false, nil
}
func (stubEngine) VideoURL(filename string) string     { return "http://engine/videos/" + filename }
func (stubEngine) ThumbnailURL(filename string) string { return "http://engine/videos/thumb.jpg" }

type stubCatalog struct{}

func (stubCatalog) GetActive(ctx context.Context, viewerID, templateID string) (*tmpldomain.AnnotatedTemplate, error) {
	return &tmpldomain.AnnotatedTemplate{
		Template: tmpldomain.Template{TemplateID: templateID, IsActive: true},
	}, nil
}

func setupCallbackRouter(t *testing.T, projects *stubProjects, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := service.NewRenderService(projects, stubJobs{}, stubEngine{}, stubCatalog{}, log,
		"http://api/render/callback", secret)

	r := gin.New()
	New(svc).RegisterCallbackRoutes(r.Group("/render"))
	return r
}

func postCallback(r *gin.Engine, projectID, secret, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render/callback/"+projectID, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Render-Callback-Secret", secret)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCallbackCompletes(t *testing.T) {
	projects := &stubProjects{statuses: map[string]string{"proj-1": projdomain.StatusProcessing}}
	r := setupCallbackRouter(t, projects, "shhh")

	w := postCallback(r, "proj-1", "shhh", `{"success":true,"video_url":"http://engine/videos/proj-1.mp4"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projdomain.StatusCompleted, projects.statuses["proj-1"])
}

func TestCallbackRejectsBadSecret(t *testing.T) {
	projects := &stubProjects{statuses: map[string]string{"proj-1": projdomain.StatusProcessing}}
	r := setupCallbackRouter(t, projects, "shhh")

	w := postCallback(r, "proj-1", "wrong", `{"success":true}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, projdomain.StatusProcessing, projects.statuses["proj-1"])
}

func TestCallbackNoSecretConfigured(t *testing.T) {
	projects := &stubProjects{statuses: map[string]string{"proj-1": projdomain.StatusProcessing}}
	r := setupCallbackRouter(t, projects, "")

	w := postCallback(r, "proj-1", "", `{"success":false,"error":"render crashed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projdomain.StatusFailed, projects.statuses["proj-1"])
}

func TestCallbackUnknownProject(t *testing.T) {
	projects := &stubProjects{statuses: map[string]string{}}
	r := setupCallbackRouter(t, projects, "")

	w := postCallback(r, "proj-missing", "", `{"success":true}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCallbackIsIdempotentOnTerminalProject(t *testing.T) {
	projects := &stubProjects{statuses: map[string]string{"proj-1": projdomain.StatusCompleted}}
	r := setupCallbackRouter(t, projects, "")

	w := postCallback(r, "proj-1", "", `{"success":false,"error":"late duplicate"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projdomain.StatusCompleted, projects.statuses["proj-1"])
}

func TestCallbackRejectsMalformedBody(t *testing.T) {
	projects := &stubProjects{statuses: map[string]string{"proj-1": projdomain.StatusProcessing}}
	r := setupCallbackRouter(t, projects, "")

	w := postCallback(r, "proj-1", "", `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
