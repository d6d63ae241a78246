package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafsal3/VideoGen-v1/internal/projects/domain"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelect = `
select
  p.project_id, p.user_id::text, p.template_id, p.name, p.description,
  p.parameters, p.status, p.render_quality,
  p.video_url, p.thumbnail_url, p.duration_seconds, p.file_size_mb,
  p.render_started_at, p.render_completed_at,
  p.created_at, p.updated_at, p.is_public,
  t.name, t.category, t.thumbnail_url
from projects p
join templates t on t.template_id = p.template_id
`

// Create inserts a new project, retrying on the rare public-ID collision.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	paramsJSON, err := json.Marshal(p.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}

	for i := 0; i < 5; i++ {
		projectID, err := NewProjectID()
		if err != nil {
			return err
		}

		const q = `
insert into projects (project_id, user_id, template_id, name, description, parameters, render_quality, status)
values ($1, $2::uuid, $3, $4, $5, $6::jsonb, $7, $8)
returning project_id, status, created_at, updated_at;
`
		err = r.db.QueryRow(ctx, q,
			projectID, p.UserID, p.TemplateID, p.Name, p.Description,
			paramsJSON, p.RenderQuality, domain.StatusDraft,
		).Scan(&p.ProjectID, &p.Status, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return nil
		}

		// unique violation on project_id -> retry with a fresh ID
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return err
	}

	return fmt.Errorf("failed to generate unique project id")
}

// GetByID retrieves one project joined with its template info. Ownership
// decisions belong to the service layer.
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	q := projectSelect + `
where p.project_id = $1;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanProjects(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return &items[0], nil
}

// ListByUser returns the user's projects, newest first.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	q := projectSelect + `
where p.user_id = $1::uuid
order by p.created_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

// ListShowcase returns public completed projects, newest first.
func (r *ProjectRepository) ListShowcase(ctx context.Context, limit int) ([]domain.Project, error) {
	q := projectSelect + `
where p.is_public and p.status = $1
order by p.created_at desc
limit $2;
`
	rows, err := r.db.Query(ctx, q, domain.StatusCompleted, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

// Update applies the non-nil fields of req. The render status is never
// touched here; only the dispatcher advances it.
func (r *ProjectRepository) Update(ctx context.Context, projectID string, req domain.UpdateRequest) error {
	var paramsJSON []byte
	if req.Parameters != nil {
		b, err := json.Marshal(req.Parameters)
		if err != nil {
			return fmt.Errorf("marshal parameters: %w", err)
		}
		paramsJSON = b
	}

	const q = `
update projects
set name = coalesce($2, name),
    description = coalesce($3, description),
    parameters = coalesce($4::jsonb, parameters),
    render_quality = coalesce($5, render_quality),
    is_public = coalesce($6, is_public),
    updated_at = now()
where project_id = $1;
`
	ct, err := r.db.Exec(ctx, q,
		projectID, req.Name, req.Description, paramsJSON, req.RenderQuality, req.IsPublic,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project.
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	const q = `
delete from projects where project_id = $1;
`
	ct, err := r.db.Exec(ctx, q, projectID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// MarkProcessing moves a draft project into processing. The guarded WHERE
// keeps the transition monotonic: a project in any other state is left
// untouched and the caller sees false.
func (r *ProjectRepository) MarkProcessing(ctx context.Context, projectID string) (bool, error) {
	const q = `
update projects
set status = $2, render_started_at = now(), updated_at = now()
where project_id = $1 and status = $3;
`
	ct, err := r.db.Exec(ctx, q, projectID, domain.StatusProcessing, domain.StatusDraft)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// MarkCompleted records the artifact metadata and finishes the render.
func (r *ProjectRepository) MarkCompleted(ctx context.Context, projectID string, res domain.RenderResult) (bool, error) {
	const q = `
update projects
set status = $2,
    video_url = $3, thumbnail_url = $4,
    duration_seconds = $5, file_size_mb = $6,
    render_completed_at = now(), updated_at = now()
where project_id = $1 and status = $7;
`
	ct, err := r.db.Exec(ctx, q, projectID, domain.StatusCompleted,
		res.VideoURL, res.ThumbnailURL, res.DurationSeconds, res.FileSizeMB,
		domain.StatusProcessing,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// MarkFailed finishes the render unsuccessfully.
func (r *ProjectRepository) MarkFailed(ctx context.Context, projectID string) (bool, error) {
	const q = `
update projects
set status = $2, render_completed_at = now(), updated_at = now()
where project_id = $1 and status = $3;
`
	ct, err := r.db.Exec(ctx, q, projectID, domain.StatusFailed, domain.StatusProcessing)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func scanProjects(rows pgx.Rows) ([]domain.Project, error) {
	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		var paramsJSON []byte
		var info domain.TemplateInfo

		err := rows.Scan(
			&p.ProjectID, &p.UserID, &p.TemplateID, &p.Name, &p.Description,
			&paramsJSON, &p.Status, &p.RenderQuality,
			&p.VideoURL, &p.ThumbnailURL, &p.DurationSeconds, &p.FileSizeMB,
			&p.RenderStartedAt, &p.RenderCompletedAt,
			&p.CreatedAt, &p.UpdatedAt, &p.IsPublic,
			&info.Name, &info.Category, &info.ThumbnailURL,
		)
		if err != nil {
			return nil, err
		}

		if len(paramsJSON) > 0 {
			if err := json.Unmarshal(paramsJSON, &p.Parameters); err != nil {
				return nil, fmt.Errorf("unmarshal parameters for %s: %w", p.ProjectID, err)
			}
		}
		p.TemplateInfo = &info
		out = append(out, p)
	}
	return out, rows.Err()
}
