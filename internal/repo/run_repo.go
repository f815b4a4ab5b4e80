package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Conveyor/internal/domain"
)

// RunRepo — репозиторий истории pipeline runs.
//
// Репозиторий хранит только заголовок run; результаты tracks
// хранит TrackRepo.
type RunRepo struct {
	pool *pgxpool.Pool
}

// NewRunRepo создаёт новый RunRepo.
func NewRunRepo(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{pool: pool}
}

// Create создаёт новый run.
func (r *RunRepo) Create(ctx context.Context, run *domain.Run) error {
	query := `
		INSERT INTO runs (id, pipeline, revision, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		run.ID,
		run.Pipeline,
		run.Revision,
		run.Status,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Update обновляет статус и временные отметки run.
func (r *RunRepo) Update(ctx context.Context, run *domain.Run) error {
	query := `
		UPDATE runs
		SET status = $2, started_at = $3, finished_at = $4, error = $5
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		run.ID,
		run.Status,
		run.StartedAt,
		run.FinishedAt,
		nullString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: run %s", ErrNotFound, run.ID)
	}
	return nil
}

// GetByID возвращает run по ID (без результатов tracks).
func (r *RunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	query := `
		SELECT id, pipeline, revision, status, started_at, finished_at, error, created_at
		FROM runs
		WHERE id = $1
	`
	return scanRun(r.pool.QueryRow(ctx, query, id))
}

// List возвращает последние runs, новые первыми.
func (r *RunRepo) List(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, pipeline, revision, status, started_at, finished_at, error, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// row — общий интерфейс pgx.Row и pgx.Rows для сканирования.
type row interface {
	Scan(dest ...any) error
}

// scanRun сканирует одну строку таблицы runs.
func scanRun(r row) (*domain.Run, error) {
	var run domain.Run
	var errMsg *string

	err := r.Scan(
		&run.ID,
		&run.Pipeline,
		&run.Revision,
		&run.Status,
		&run.StartedAt,
		&run.FinishedAt,
		&errMsg,
		&run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if errMsg != nil {
		run.Error = *errMsg
	}
	return &run, nil
}

// nullString возвращает nil для пустой строки (NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
