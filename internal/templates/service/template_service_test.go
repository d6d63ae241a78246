package service

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafsal3/VideoGen-v1/internal/templates/domain"
)

type savedKey struct {
	userID     string
	templateID string
}

type fakeTemplateStore struct {
	templates map[string]domain.Template
	saved     map[savedKey]bool
}

func newFakeTemplateStore(templates ...domain.Template) *fakeTemplateStore {
	f := &fakeTemplateStore{
		templates: make(map[string]domain.Template),
		saved:     make(map[savedKey]bool),
	}
	for _, t := range templates {
		f.templates[t.TemplateID] = t
	}
	return f
}

func (f *fakeTemplateStore) annotate(viewerID string, t domain.Template) domain.AnnotatedTemplate {
	total := 0
	for k := range f.saved {
		if k.templateID == t.TemplateID {
			total++
		}
	}
	return domain.AnnotatedTemplate{
		Template:   t,
		IsSaved:    f.saved[savedKey{viewerID, t.TemplateID}],
		TotalSaves: total,
	}
}

func (f *fakeTemplateStore) ListActive(ctx context.Context, viewerID, category string) ([]domain.AnnotatedTemplate, error) {
	var out []domain.AnnotatedTemplate
	for _, t := range f.templates {
		if t.IsActive && (category == "" || t.Category == category) {
			out = append(out, f.annotate(viewerID, t))
		}
	}
	return out, nil
}

func (f *fakeTemplateStore) Search(ctx context.Context, viewerID, query string) ([]domain.AnnotatedTemplate, error) {
	return f.ListActive(ctx, viewerID, "")
}

func (f *fakeTemplateStore) ListSaved(ctx context.Context, viewerID string) ([]domain.AnnotatedTemplate, error) {
	var out []domain.AnnotatedTemplate
	for k := range f.saved {
		if k.userID == viewerID {
			out = append(out, f.annotate(viewerID, f.templates[k.templateID]))
		}
	}
	return out, nil
}

func (f *fakeTemplateStore) GetActive(ctx context.Context, viewerID, templateID string) (*domain.AnnotatedTemplate, error) {
	t, ok := f.templates[templateID]
	if !ok || !t.IsActive {
		return nil, domain.ErrTemplateNotFound
	}
	a := f.annotate(viewerID, t)
	return &a, nil
}

func (f *fakeTemplateStore) Categories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, t := range f.templates {
		if t.IsActive && !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out, nil
}

func (f *fakeTemplateStore) Save(ctx context.Context, userID, templateID string) (bool, error) {
	k := savedKey{userID, templateID}
	if f.saved[k] {
		return false, nil
	}
	f.saved[k] = true
	return true, nil
}

func (f *fakeTemplateStore) Unsave(ctx context.Context, userID, templateID string) (bool, error) {
	k := savedKey{userID, templateID}
	if !f.saved[k] {
		return false, nil
	}
	delete(f.saved, k)
	return true, nil
}

func newTestTemplateService(store TemplateStore) *TemplateService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewTemplateService(store, log)
}

func TestSaveUnknownTemplate(t *testing.T) {
	svc := newTestTemplateService(newFakeTemplateStore())

	_, err := svc.Save(context.Background(), "user-1", "tmpl-missing")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestSaveInactiveTemplate(t *testing.T) {
	store := newFakeTemplateStore(domain.Template{TemplateID: "tmpl-old", IsActive: false})
	svc := newTestTemplateService(store)

	_, err := svc.Save(context.Background(), "user-1", "tmpl-old")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestSaveIsIdempotent(t *testing.T) {
	store := newFakeTemplateStore(domain.Template{TemplateID: "tmpl-a", IsActive: true})
	svc := newTestTemplateService(store)
	ctx := context.Background()

	added, err := svc.Save(ctx, "user-1", "tmpl-a")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.Save(ctx, "user-1", "tmpl-a")
	require.NoError(t, err)
	assert.False(t, added)

	saved, err := svc.ListSaved(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.True(t, saved[0].IsSaved)
	assert.Equal(t, 1, saved[0].TotalSaves)
}

func TestUnsaveIsIdempotent(t *testing.T) {
	store := newFakeTemplateStore(domain.Template{TemplateID: "tmpl-a", IsActive: true})
	svc := newTestTemplateService(store)
	ctx := context.Background()

	removed, err := svc.Unsave(ctx, "user-1", "tmpl-a")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = svc.Save(ctx, "user-1", "tmpl-a")
	require.NoError(t, err)

	removed, err = svc.Unsave(ctx, "user-1", "tmpl-a")
	require.NoError(t, err)
	assert.True(t, removed)

	saved, err := svc.ListSaved(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestSaveCountsAreViewerScoped(t *testing.T) {
	store := newFakeTemplateStore(domain.Template{TemplateID: "tmpl-a", IsActive: true})
	svc := newTestTemplateService(store)
	ctx := context.Background()

	_, err := svc.Save(ctx, "user-1", "tmpl-a")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "user-2", "tmpl-a")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "user-1", "tmpl-a")
	require.NoError(t, err)
	assert.True(t, got.IsSaved)
	assert.Equal(t, 2, got.TotalSaves)

	anon, err := svc.Get(ctx, "", "tmpl-a")
	require.NoError(t, err)
	assert.False(t, anon.IsSaved)
	assert.Equal(t, 2, anon.TotalSaves)
}
