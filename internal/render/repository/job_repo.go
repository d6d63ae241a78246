package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafsal3/VideoGen-v1/internal/render/domain"
)

const (
	jobKeyPrefix      = "render:job:"    // render:job:{project_id}
	engineIndexPrefix = "render:engine:" // render:engine:{engine_job_id} -> project_id
	eventChanPrefix   = "render:events:" // pub/sub channel per project
	activeJobsKey     = "render:active"  // set of project IDs with in-flight renders
	jobTTL            = 7 * 24 * time.Hour
)

// JobRepository handles Redis operations for render job tracking.
type JobRepository struct {
	client *redis.Client
}

func NewJobRepository(client *redis.Client) *JobRepository {
	return &JobRepository{client: client}
}

// Create records a new in-flight job. The active set feeds the reconciler.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if job.StartedAt.IsZero() {
		job.StartedAt = time.Now()
	}
	job.UpdatedAt = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.jobKey(job.ProjectID), data, jobTTL)
	pipe.SAdd(ctx, activeJobsKey, job.ProjectID)
	if job.EngineJobID != "" {
		pipe.Set(ctx, r.engineKey(job.EngineJobID), job.ProjectID, jobTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetByProjectID retrieves the job tracking a project's render.
func (r *JobRepository) GetByProjectID(ctx context.Context, projectID string) (*domain.Job, error) {
	data, err := r.client.Get(ctx, r.jobKey(projectID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job domain.Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// GetByEngineJobID resolves the engine's handle back to our job.
func (r *JobRepository) GetByEngineJobID(ctx context.Context, engineJobID string) (*domain.Job, error) {
	projectID, err := r.client.Get(ctx, r.engineKey(engineJobID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve engine job id: %w", err)
	}
	return r.GetByProjectID(ctx, projectID)
}

// Update rewrites the job record and publishes a transition event. Jobs in
// a terminal state drop out of the active set.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	existing, err := r.GetByProjectID(ctx, job.ProjectID)
	if err != nil {
		return err
	}

	job.UpdatedAt = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.jobKey(job.ProjectID), data, jobTTL)

	if job.EngineJobID != "" && job.EngineJobID != existing.EngineJobID {
		if existing.EngineJobID != "" {
			pipe.Del(ctx, r.engineKey(existing.EngineJobID))
		}
		pipe.Set(ctx, r.engineKey(job.EngineJobID), job.ProjectID, jobTTL)
	}

	if job.CompletedAt != nil {
		pipe.SRem(ctx, activeJobsKey, job.ProjectID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	if job.Status != "" {
		if eventData, err := json.Marshal(job); err == nil {
			r.client.Publish(ctx, r.eventChannel(job.ProjectID), eventData)
		}
	}
	return nil
}

// ListActive returns the project IDs with in-flight renders.
func (r *JobRepository) ListActive(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, activeJobsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	return ids, nil
}

// Delete removes a job and its indexes.
func (r *JobRepository) Delete(ctx context.Context, projectID string) error {
	job, err := r.GetByProjectID(ctx, projectID)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.jobKey(projectID))
	pipe.SRem(ctx, activeJobsKey, projectID)
	if job.EngineJobID != "" {
		pipe.Del(ctx, r.engineKey(job.EngineJobID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

func (r *JobRepository) jobKey(projectID string) string {
	return jobKeyPrefix + projectID
}

func (r *JobRepository) engineKey(engineJobID string) string {
	return engineIndexPrefix + engineJobID
}

func (r *JobRepository) eventChannel(projectID string) string {
	return eventChanPrefix + projectID
}
