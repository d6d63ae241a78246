package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafsal3/VideoGen-v1/internal/templates/domain"
)

type TemplateRepository struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// annotatedSelect joins each template with the viewer's save flag and the
// catalog-wide save counter. $1 is the viewer user ID (nullable).
const annotatedSelect = `
select
  t.template_id, t.name, t.description, t.category, t.parameters_schema,
  t.preview_url, t.thumbnail_url, t.duration_seconds, t.resolution,
  t.is_premium, t.is_active, t.render_engine, t.tags, t.created_at,
  (select count(*) from saved_templates s where s.template_id = t.template_id) as total_saves,
  exists(
    select 1 from saved_templates s
    where s.template_id = t.template_id and s.user_id = nullif($1,'')::uuid
  ) as is_saved
from templates t
`

// ListActive returns active templates annotated for the viewer, optionally
// narrowed to one category.
func (r *TemplateRepository) ListActive(ctx context.Context, viewerID, category string) ([]domain.AnnotatedTemplate, error) {
	q := annotatedSelect + `
where t.is_active
  and ($2 = '' or t.category = $2)
order by t.created_at desc, t.template_id;
`
	rows, err := r.db.Query(ctx, q, viewerID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnotated(rows)
}

// Search matches active templates by name, description or exact tag.
func (r *TemplateRepository) Search(ctx context.Context, viewerID, query string) ([]domain.AnnotatedTemplate, error) {
	q := annotatedSelect + `
where t.is_active
  and (t.name ilike '%' || $2 || '%'
    or t.description ilike '%' || $2 || '%'
    or $2 = any(t.tags))
order by t.created_at desc, t.template_id;
`
	rows, err := r.db.Query(ctx, q, viewerID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnotated(rows)
}

// ListSaved returns the viewer's saved active templates, oldest save first.
func (r *TemplateRepository) ListSaved(ctx context.Context, viewerID string) ([]domain.AnnotatedTemplate, error) {
	q := annotatedSelect + `
join saved_templates sv
  on sv.template_id = t.template_id and sv.user_id = nullif($1,'')::uuid
where t.is_active
order by sv.saved_at;
`
	rows, err := r.db.Query(ctx, q, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnotated(rows)
}

// GetActive retrieves one active template annotated for the viewer.
func (r *TemplateRepository) GetActive(ctx context.Context, viewerID, templateID string) (*domain.AnnotatedTemplate, error) {
	q := annotatedSelect + `
where t.template_id = $2 and t.is_active;
`
	rows, err := r.db.Query(ctx, q, viewerID, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanAnnotated(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrTemplateNotFound
	}
	return &items[0], nil
}

// Categories lists the distinct categories of active templates.
func (r *TemplateRepository) Categories(ctx context.Context) ([]string, error) {
	const q = `
select distinct category from templates where is_active order by category;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 8)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Save adds the template to the user's saved set. Inserting an existing
// membership is a no-op, which keeps the operation idempotent.
func (r *TemplateRepository) Save(ctx context.Context, userID, templateID string) (bool, error) {
	const q = `
insert into saved_templates (user_id, template_id)
values ($1::uuid, $2)
on conflict (user_id, template_id) do nothing;
`
	ct, err := r.db.Exec(ctx, q, userID, templateID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Unsave removes the template from the user's saved set.
func (r *TemplateRepository) Unsave(ctx context.Context, userID, templateID string) (bool, error) {
	const q = `
delete from saved_templates where user_id = $1::uuid and template_id = $2;
`
	ct, err := r.db.Exec(ctx, q, userID, templateID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Insert adds a template to the catalog, skipping IDs already present.
// Used by the startup seeder.
func (r *TemplateRepository) Insert(ctx context.Context, t *domain.Template) error {
	schemaJSON, err := json.Marshal(t.ParametersSchema)
	if err != nil {
		return fmt.Errorf("marshal parameters schema: %w", err)
	}

	const q = `
insert into templates (
  template_id, name, description, category, parameters_schema,
  preview_url, thumbnail_url, duration_seconds, resolution,
  is_premium, is_active, render_engine, tags
)
values ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10, $11, $12, $13)
on conflict (template_id) do nothing;
`
	_, err = r.db.Exec(ctx, q,
		t.TemplateID, t.Name, t.Description, t.Category, schemaJSON,
		t.PreviewURL, t.ThumbnailURL, t.DurationSeconds, t.Resolution,
		t.IsPremium, t.IsActive, t.RenderEngine, t.Tags,
	)
	return err
}

// Count returns total and active template counts.
func (r *TemplateRepository) Count(ctx context.Context) (total, active int, err error) {
	const q = `
select count(*), count(*) filter (where is_active) from templates;
`
	err = r.db.QueryRow(ctx, q).Scan(&total, &active)
	return total, active, err
}

// ActivateAll flips every template active and reports how many rows changed.
func (r *TemplateRepository) ActivateAll(ctx context.Context) (int64, error) {
	const q = `
update templates set is_active = true where not is_active;
`
	ct, err := r.db.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// StatusSummary reports activation state across the whole catalog.
func (r *TemplateRepository) StatusSummary(ctx context.Context) (*domain.StatusSummary, error) {
	const q = `
select template_id, name, is_active from templates order by template_id;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &domain.StatusSummary{Templates: make([]domain.TemplateActivity, 0, 16)}
	for rows.Next() {
		var ta domain.TemplateActivity
		if err := rows.Scan(&ta.TemplateID, &ta.Name, &ta.IsActive); err != nil {
			return nil, err
		}
		summary.TotalTemplates++
		if ta.IsActive {
			summary.ActiveTemplates++
		}
		summary.Templates = append(summary.Templates, ta)
	}
	return summary, rows.Err()
}

func scanAnnotated(rows pgx.Rows) ([]domain.AnnotatedTemplate, error) {
	out := make([]domain.AnnotatedTemplate, 0, 16)
	for rows.Next() {
		var at domain.AnnotatedTemplate
		var schemaJSON []byte

		err := rows.Scan(
			&at.TemplateID, &at.Name, &at.Description, &at.Category, &schemaJSON,
			&at.PreviewURL, &at.ThumbnailURL, &at.DurationSeconds, &at.Resolution,
			&at.IsPremium, &at.IsActive, &at.RenderEngine, &at.Tags, &at.CreatedAt,
			&at.TotalSaves, &at.IsSaved,
		)
		if err != nil {
			return nil, err
		}

		if len(schemaJSON) > 0 {
			if err := json.Unmarshal(schemaJSON, &at.ParametersSchema); err != nil {
				return nil, fmt.Errorf("unmarshal parameters schema for %s: %w", at.TemplateID, err)
			}
		}
		if at.Tags == nil {
			at.Tags = []string{}
		}
		out = append(out, at)
	}
	return out, rows.Err()
}
