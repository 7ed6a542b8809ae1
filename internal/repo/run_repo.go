package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shaiso/Zenith/internal/domain"
)

// RunRepo — история runs и их единиц работы.
type RunRepo struct {
	db DB
}

// NewRunRepo создаёт новый RunRepo.
func NewRunRepo(db DB) *RunRepo {
	return &RunRepo{db: db}
}

// Create создаёт новый run.
func (r *RunRepo) Create(ctx context.Context, run *domain.Run) error {
	query := `
		INSERT INTO runs (id, command, cache_type, root, status, rounds, started_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		run.ID,
		run.Command,
		run.CacheType,
		run.Root,
		string(run.Status),
		run.Rounds,
		run.StartedAt,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Update обновляет статус и итоги run.
func (r *RunRepo) Update(ctx context.Context, run *domain.Run) error {
	query := `
		UPDATE runs
		SET status = $2, rounds = $3, started_at = $4, finished_at = $5, error = $6
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query,
		run.ID,
		string(run.Status),
		run.Rounds,
		run.StartedAt,
		run.FinishedAt,
		nullString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID возвращает run по ID.
func (r *RunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	query := `
		SELECT id, command, cache_type, root, status, rounds,
		       started_at, finished_at, error, created_at
		FROM runs
		WHERE id = $1
	`
	var run domain.Run
	var status string
	var runError *string

	err := r.db.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.Command,
		&run.CacheType,
		&run.Root,
		&status,
		&run.Rounds,
		&run.StartedAt,
		&run.FinishedAt,
		&runError,
		&run.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.Status = domain.RunStatus(status)
	if runError != nil {
		run.Error = *runError
	}
	return &run, nil
}

// AddExecution сохраняет запись об обработке проекта в рамках run.
func (r *RunRepo) AddExecution(ctx context.Context, runID uuid.UUID, rec *domain.ExecutionRecord) error {
	query := `
		INSERT INTO executions (run_id, project, command, fingerprint, outcome, round,
		                        fetch_ms, run_ms, cache_ms, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		runID,
		rec.Project,
		rec.Command,
		string(rec.Fingerprint),
		string(rec.Outcome),
		rec.Round,
		rec.FetchDuration.Milliseconds(),
		rec.RunDuration.Milliseconds(),
		rec.CacheDuration.Milliseconds(),
		rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert execution: %w", err)
	}
	return nil
}

// nullString возвращает nil для пустой строки (для NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
