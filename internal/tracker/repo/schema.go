package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateTables sets up the tracker schema. Statements are idempotent so
// the service can run it on every start.
func CreateTables(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entry (
			id SERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			exercise TEXT NOT NULL,
			reps INTEGER NOT NULL,
			weight DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entry_user_created_at ON entry(user_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_entry_exercise_created_at ON entry(exercise, created_at);`,
		`CREATE TABLE IF NOT EXISTS body_measurement (
			id SERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			height_cm DOUBLE PRECISION,
			weight_kg DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_body_measurement_user_created_at ON body_measurement(user_id, created_at);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}
