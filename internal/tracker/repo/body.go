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

var ErrMeasurementNotFound = errors.New("measurement not found")

// BodyMeasurement is one height/weight reading. Both values are
// nullable so a future flow can record just one of them.
type BodyMeasurement struct {
	ID        int       `json:"id"`
	UserID    int64     `json:"userId"`
	HeightCm  *float64  `json:"heightCm,omitempty"`
	WeightKg  *float64  `json:"weightKg,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type BodyRepo struct {
	db *pgxpool.Pool
}

func NewBodyRepo(db *pgxpool.Pool) *BodyRepo {
	return &BodyRepo{
		db: db,
	}
}

func (r *BodyRepo) Add(ctx context.Context, m BodyMeasurement) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.body.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO body_measurement
				(user_id, height_cm, weight_kg, created_at)
				VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		m.UserID, m.HeightCm, m.WeightKg, m.CreatedAt,
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

	span.SetAttributes(attribute.Int("measurement.id", id))

	m.ID = id
	return &m, nil
}

// Latest returns the newest measurement of a user, or
// ErrMeasurementNotFound when there is none yet.
func (r *BodyRepo) Latest(ctx context.Context, userID int64) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.body.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))

	measurements, err := r.Recent(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(measurements) == 0 {
		return nil, ErrMeasurementNotFound
	}
	return &measurements[0], nil
}

// Recent returns the latest `limit` measurements, newest first.
func (r *BodyRepo) Recent(ctx context.Context, userID int64, limit int) (_ []BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.body.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	if limit < 1 {
		return nil, errors.New("limit must be greater than 0")
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, height_cm, weight_kg, created_at
			FROM body_measurement
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	measurements, err := rows2measurements(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2measurements: %w", err)
	}
	return measurements, nil
}

func rows2measurements(rows pgx.Rows) ([]BodyMeasurement, error) {
	var measurements []BodyMeasurement
	for rows.Next() {
		var m BodyMeasurement
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.HeightCm,
			&m.WeightKg,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		measurements = append(measurements, m)
	}
	return measurements, nil
}
