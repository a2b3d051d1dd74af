package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the tables the service writes to.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS parse_attempts (
	id BIGSERIAL PRIMARY KEY,
	channel TEXT NOT NULL,
	input TEXT NOT NULL,
	recognized BOOLEAN NOT NULL,
	source TEXT,
	rule TEXT,
	day SMALLINT,
	month SMALLINT,
	year SMALLINT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS parse_attempts_created_at_idx ON parse_attempts (created_at DESC);
`)
	return err
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
