package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafsal3/VideoGen-v1/internal/render/domain"
)

func setupTestRepo(t *testing.T) *JobRepository {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewJobRepository(client)
}

func testJob(projectID string) *domain.Job {
	return &domain.Job{
		ProjectID:  projectID,
		UserID:     "user-1",
		TemplateID: "tmpl-news",
		Status:     "processing",
		Quality:    "1080p",
	}
}

func TestCreateAndGetJob(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	job := testJob("proj-1")
	require.NoError(t, repo.Create(ctx, job))
	assert.False(t, job.StartedAt.IsZero())

	got, err := repo.GetByProjectID(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "proj-1", got.ProjectID)
	assert.Equal(t, "processing", got.Status)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Contains(t, active, "proj-1")
}

func TestGetMissingJob(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetByProjectID(context.Background(), "proj-missing")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestEngineIndexFollowsJob(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	job := testJob("proj-1")
	require.NoError(t, repo.Create(ctx, job))

	job.EngineJobID = "proj-1.mp4"
	require.NoError(t, repo.Update(ctx, job))

	got, err := repo.GetByEngineJobID(ctx, "proj-1.mp4")
	require.NoError(t, err)
	assert.Equal(t, "proj-1", got.ProjectID)

	job.EngineJobID = "proj-1-v2.mp4"
	require.NoError(t, repo.Update(ctx, job))

	_, err = repo.GetByEngineJobID(ctx, "proj-1.mp4")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	got, err = repo.GetByEngineJobID(ctx, "proj-1-v2.mp4")
	require.NoError(t, err)
	assert.Equal(t, "proj-1", got.ProjectID)
}

func TestCompletedJobLeavesActiveSet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	job := testJob("proj-1")
	require.NoError(t, repo.Create(ctx, job))

	now := time.Now()
	job.Status = "completed"
	job.CompletedAt = &now
	require.NoError(t, repo.Update(ctx, job))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.NotContains(t, active, "proj-1")

	// The record itself stays readable for status queries.
	got, err := repo.GetByProjectID(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestDeleteJob(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	job := testJob("proj-1")
	job.EngineJobID = "proj-1.mp4"
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, repo.Delete(ctx, "proj-1"))

	_, err := repo.GetByProjectID(ctx, "proj-1")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	_, err = repo.GetByEngineJobID(ctx, "proj-1.mp4")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.NotContains(t, active, "proj-1")
}
