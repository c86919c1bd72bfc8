package repository

import (
	"context"
	"encoding/json"
	"errors"

	"resume-builder/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

var ErrNoDatabase = errors.New("export audit database not configured")

// ExportsRepo stores export audit rows. A nil pool turns every call into a
// no-op so the app runs without a database.
type ExportsRepo struct {
	pool *pgxpool.Pool
}

func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool}
}

func (r *ExportsRepo) Enabled() bool { return r != nil && r.pool != nil }

func (r *ExportsRepo) Save(ctx context.Context, e *domain.ExportEvent) error {
	if !r.Enabled() {
		return nil
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO export_events (id, session_id, template, language, renderer, size_bytes, attempts, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO NOTHING`,
		e.ID, e.SessionID, e.Template, e.Language, e.Renderer, e.SizeBytes, e.Attempts, e.CreatedAt)
	return err
}

// TemplateStats is the number of exports per template and language.
type TemplateStats struct {
	Template string `json:"template"`
	Language string `json:"language"`
	Exports  int    `json:"exports"`
	Bytes    int64  `json:"bytes"`
}

// Stats aggregates the audit table in the database and returns it as JSON rows.
func (r *ExportsRepo) Stats(ctx context.Context) ([]TemplateStats, error) {
	if !r.Enabled() {
		return nil, ErrNoDatabase
	}
	var out []TemplateStats
	err := queryJSON(ctx, r.pool, `SELECT coalesce(json_agg(row_to_json(s)), '[]') FROM (
		SELECT template, language, count(*) AS exports, coalesce(sum(size_bytes), 0) AS bytes
		FROM export_events GROUP BY template, language ORDER BY template, language) s`, &out)
	return out, err
}

// queryJSON runs a SQL that returns a single json value and unmarshals it into dst.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, sql string, dst any, args ...any) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
