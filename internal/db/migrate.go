package db

import (
	"context"
	"embed"
	"fmt"
	"regexp"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var upFilePattern = regexp.MustCompile(`^(\d{4})_.+\.up\.sql$`)

// Migrate applies pending versioned migrations from internal/db/migrations.
// Files follow the pattern 0001_name.up.sql and are applied in order; the
// schema_migrations table records what already ran.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const ensure = `
create table if not exists schema_migrations (
  version    int primary key,
  applied_at timestamptz not null default now()
);`
	if _, err := pool.Exec(ctx, ensure); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	type migration struct {
		version int
		file    string
	}
	var pending []migration
	for _, e := range entries {
		m := upFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		var v int
		fmt.Sscanf(m[1], "%d", &v)
		pending = append(pending, migration{version: v, file: "migrations/" + e.Name()})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })

	for _, m := range pending {
		var applied bool
		err := pool.QueryRow(ctx,
			`select exists(select 1 from schema_migrations where version = $1)`, m.version,
		).Scan(&applied)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		sqlText, err := migrationsFS.ReadFile(m.file)
		if err != nil {
			return err
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, string(sqlText)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(ctx,
			`insert into schema_migrations (version) values ($1)`, m.version,
		); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}

	return nil
}
