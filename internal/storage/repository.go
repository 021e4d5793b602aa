package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/guttosm/custopulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// RunsRepository defines contract for the processing-run audit log.
type RunsRepository interface {
	InsertRun(ctx context.Context, run models.Run) error
	ListRecentRuns(ctx context.Context, limit int) ([]models.Run, error)
	Ping(ctx context.Context) error
}

type runsRepository struct {
	db *sql.DB
}

func NewRunsRepository(db *sql.DB) RunsRepository {
	return &runsRepository{db: db}
}

// InsertRun records one rendering pass. Re-inserting the same run ID is a no-op.
func (r *runsRepository) InsertRun(ctx context.Context, run models.Run) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO processing_runs
			(id, request_id, files, lim_ef, lim_norm, present, reason, efficient_rows, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`,
		run.ID,
		nullString(run.RequestID),
		pq.Array(run.Files),
		run.LimEf,
		run.LimNorm,
		run.Present,
		nullString(run.Reason),
		run.EfficientRows,
		run.DurationMs,
		run.CreatedAt,
	)
	return err
}

// ListRecentRuns returns up to limit runs, newest first.
func (r *runsRepository) ListRecentRuns(ctx context.Context, limit int) ([]models.Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, files, lim_ef, lim_norm, present, reason, efficient_rows, duration_ms, created_at
		FROM processing_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	runs := []models.Run{}
	for rows.Next() {
		var (
			run       models.Run
			requestID sql.NullString
			reason    sql.NullString
			createdAt time.Time
		)
		if err := rows.Scan(
			&run.ID,
			&requestID,
			pq.Array(&run.Files),
			&run.LimEf,
			&run.LimNorm,
			&run.Present,
			&reason,
			&run.EfficientRows,
			&run.DurationMs,
			&createdAt,
		); err != nil {
			return nil, err
		}
		run.RequestID = requestID.String
		run.Reason = reason.String
		run.CreatedAt = createdAt.UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Ping checks database connectivity.
func (r *runsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// helper to map empty strings to NULL (nil)
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// NopRunsRepository discards runs; used when auditing is disabled.
type NopRunsRepository struct{}

func (NopRunsRepository) InsertRun(context.Context, models.Run) error { return nil }

func (NopRunsRepository) ListRecentRuns(context.Context, int) ([]models.Run, error) {
	return []models.Run{}, nil
}

func (NopRunsRepository) Ping(context.Context) error { return nil }
