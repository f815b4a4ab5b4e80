package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Conveyor/internal/domain"
)

// TrackRepo — репозиторий результатов tracks.
//
// Результаты stages хранятся JSON-документом в колонке stages:
// структура stage фиксирована, а отдельные запросы по stages не нужны.
type TrackRepo struct {
	pool *pgxpool.Pool
}

// NewTrackRepo создаёт новый TrackRepo.
func NewTrackRepo(pool *pgxpool.Pool) *TrackRepo {
	return &TrackRepo{pool: pool}
}

// Create создаёт запись track.
func (r *TrackRepo) Create(ctx context.Context, track *domain.TrackResult) error {
	stagesJSON, err := json.Marshal(track.Stages)
	if err != nil {
		return fmt.Errorf("marshal stages: %w", err)
	}

	query := `
		INSERT INTO tracks (id, run_id, name, node_selector, status, stages)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.pool.Exec(ctx, query,
		track.ID,
		track.RunID,
		track.Name,
		track.NodeSelector,
		track.Status,
		stagesJSON,
	)
	if err != nil {
		return fmt.Errorf("insert track: %w", err)
	}
	return nil
}

// Update обновляет результат track целиком.
func (r *TrackRepo) Update(ctx context.Context, track *domain.TrackResult) error {
	stagesJSON, err := json.Marshal(track.Stages)
	if err != nil {
		return fmt.Errorf("marshal stages: %w", err)
	}

	query := `
		UPDATE tracks
		SET node = $2, status = $3, stages = $4,
		    started_at = $5, finished_at = $6, error = $7
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		track.ID,
		nullString(track.Node),
		track.Status,
		stagesJSON,
		track.StartedAt,
		track.FinishedAt,
		nullString(track.Error),
	)
	if err != nil {
		return fmt.Errorf("update track: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: track %s", ErrNotFound, track.ID)
	}
	return nil
}

// ListByRun возвращает tracks одного run.
func (r *TrackRepo) ListByRun(ctx context.Context, runID uuid.UUID) ([]domain.TrackResult, error) {
	query := `
		SELECT id, run_id, name, node_selector, node, status, stages,
		       started_at, finished_at, error
		FROM tracks
		WHERE run_id = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []domain.TrackResult
	for rows.Next() {
		var track domain.TrackResult
		var node, errMsg *string
		var stagesJSON []byte

		err := rows.Scan(
			&track.ID,
			&track.RunID,
			&track.Name,
			&track.NodeSelector,
			&node,
			&track.Status,
			&stagesJSON,
			&track.StartedAt,
			&track.FinishedAt,
			&errMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}

		if node != nil {
			track.Node = *node
		}
		if errMsg != nil {
			track.Error = *errMsg
		}
		if err := json.Unmarshal(stagesJSON, &track.Stages); err != nil {
			return nil, fmt.Errorf("unmarshal stages: %w", err)
		}

		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}
