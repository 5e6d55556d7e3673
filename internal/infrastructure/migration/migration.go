package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Execer runs a statement; *pgxpool.Pool satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema steps in order. Every step is idempotent.
func Migrations() []Migration {
	return []Migration{
		{
			Name: "create_users",
			SQL: `CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		},
		{
			Name: "create_resume_drafts",
			SQL: `CREATE TABLE IF NOT EXISTS resume_drafts (
				id UUID PRIMARY KEY,
				user_id UUID REFERENCES users(id) ON DELETE CASCADE,
				template_id TEXT NOT NULL DEFAULT 'classic',
				form JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		},
		{
			Name: "index_resume_drafts_user",
			SQL:  `CREATE INDEX IF NOT EXISTS resume_drafts_user_idx ON resume_drafts (user_id, updated_at DESC)`,
		},
	}
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		slog.Warn("Skipping database migrations, no database configured")
		return nil
	}
	return Run(ctx, pool, Migrations())
}

func Run(ctx context.Context, db Execer, migrations []Migration) error {
	slog.Info("Starting database migrations")

	for _, m := range migrations {
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}
