package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymbuddy/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Entry is one logged set: an exercise done for some reps, with an
// optional weight. A nil weight means bodyweight / not tracked and is
// distinct from an explicit zero.
type Entry struct {
	ID        int       `json:"id"`
	UserID    int64     `json:"userId"`
	Exercise  string    `json:"exercise"`
	Reps      int       `json:"reps"`
	Weight    *float64  `json:"weight,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type EntriesRepo struct {
	db *pgxpool.Pool
}

func NewEntriesRepo(db *pgxpool.Pool) *EntriesRepo {
	return &EntriesRepo{
		db: db,
	}
}

func (r *EntriesRepo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO entry
				(user_id, exercise, reps, weight, created_at)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		entry.UserID, entry.Exercise, entry.Reps, entry.Weight, entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("entry.id", id))

	entry.ID = id
	return &entry, nil
}

// ListSince returns the entries of a user created at or after `since`,
// newest first. An empty exercise means no exercise filter.
func (r *EntriesRepo) ListSince(ctx context.Context, userID int64, exercise string, since time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.listsince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.String("exercise", exercise))
	span.SetAttributes(attribute.String("since", since.String()))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, exercise, reps, weight, created_at
			FROM entry
			WHERE user_id = $1
				AND ($2::text = '' OR exercise = $2)
				AND created_at >= $3
			ORDER BY created_at DESC;`,
		userID, exercise, since,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	entries, err := rows2entries(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2entries: %w", err)
	}
	return entries, nil
}

// Recent returns the latest `limit` entries of a user for one exercise,
// newest first.
func (r *EntriesRepo) Recent(ctx context.Context, userID int64, exercise string, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.String("exercise", exercise))
	span.SetAttributes(attribute.Int("limit", limit))

	if limit < 1 {
		return nil, errors.New("limit must be greater than 0")
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, exercise, reps, weight, created_at
			FROM entry
			WHERE user_id = $1 AND exercise = $2
			ORDER BY created_at DESC
			LIMIT $3;`,
		userID, exercise, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	entries, err := rows2entries(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2entries: %w", err)
	}
	return entries, nil
}

func rows2entries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Exercise,
			&entry.Reps,
			&entry.Weight,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
