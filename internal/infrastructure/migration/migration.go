package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations are applied in order; each statement is idempotent.
var Migrations = []Migration{
	{
		Name: "create_export_events",
		SQL: `CREATE TABLE IF NOT EXISTS export_events (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL,
			template TEXT NOT NULL,
			language TEXT NOT NULL DEFAULT '',
			renderer TEXT NOT NULL DEFAULT '',
			size_bytes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "add_attempts_to_export_events",
		SQL:  `ALTER TABLE export_events ADD COLUMN IF NOT EXISTS attempts INTEGER NOT NULL DEFAULT 1;`,
	},
	{
		Name: "index_export_events_template",
		SQL:  `CREATE INDEX IF NOT EXISTS export_events_template_idx ON export_events (template, language);`,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	log.Info("Starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		log.Info("Migration completed", "name", m.Name)
	}

	log.Info("All migrations completed successfully")
	return nil
}
