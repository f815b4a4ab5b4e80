package orchestrator

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/engine"
	"github.com/shaiso/Conveyor/internal/mq"
	"github.com/shaiso/Conveyor/internal/node"
	"github.com/shaiso/Conveyor/internal/repo"
	"github.com/shaiso/Conveyor/internal/runner"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// Orchestrator выполняет pipeline runs.
type Orchestrator struct {
	provider node.Provider
	runner   runner.Runner

	// История и события — опциональны (nil — выключено)
	runRepo   *repo.RunRepo
	trackRepo *repo.TrackRepo
	publisher *mq.Publisher

	// Ambient-окружение, поверх которого применяются overlays
	baseEnv []string

	// База рабочих директорий tracks ("" — текущая директория процесса)
	workDir string

	logger *slog.Logger
}

// Config — конфигурация Orchestrator.
type Config struct {
	// Provider — выделение worker-нод (обязателен).
	Provider node.Provider

	// Runner — выполнение actions (обязателен).
	Runner runner.Runner

	// RunRepo/TrackRepo — история runs в БД (опционально; nil — без истории).
	RunRepo   *repo.RunRepo
	TrackRepo *repo.TrackRepo

	// Publisher — события в RabbitMQ (опционально; nil — без событий).
	Publisher *mq.Publisher

	// BaseEnv — ambient-окружение actions (default: os.Environ()).
	BaseEnv []string

	// WorkDir — база рабочих директорий: каждый track работает
	// в WorkDir/<имя ноды>. Пустая строка — текущая директория.
	WorkDir string

	// Logger (опционально; если nil — используется slog.Default()).
	Logger *slog.Logger
}

// New создаёт новый Orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Provider == nil {
		return nil, ErrNoProvider
	}
	if cfg.Runner == nil {
		return nil, ErrNoRunner
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	baseEnv := cfg.BaseEnv
	if baseEnv == nil {
		baseEnv = os.Environ()
	}

	return &Orchestrator{
		provider:  cfg.Provider,
		runner:    cfg.Runner,
		runRepo:   cfg.RunRepo,
		trackRepo: cfg.TrackRepo,
		publisher: cfg.Publisher,
		baseEnv:   baseEnv,
		workDir:   cfg.WorkDir,
		logger:    logger,
	}, nil
}

// Execute выполняет один run заданного spec.
//
// Все tracks запускаются параллельно; Execute возвращается после
// завершения последнего из них (join). Ошибка возвращается только
// для невалидного spec — результат выполнения, включая падения tracks,
// отражается в статусах вернувшегося Run.
//
// Отмена ctx прерывает все выполняющиеся tracks.
func (o *Orchestrator) Execute(ctx context.Context, spec *domain.PipelineSpec) (*domain.Run, error) {
	if err := engine.Validate(spec); err != nil {
		return nil, err
	}

	run := domain.NewRun(spec)
	run.MarkRunning()

	logger := telemetry.WithRunID(o.logger, run.ID.String())
	logger.Info("run started",
		"pipeline", run.Pipeline,
		"revision", run.Revision,
		"tracks", len(run.Tracks),
	)

	o.recordRunStarted(ctx, run)

	// fork: каждый track — независимая горутина
	var wg sync.WaitGroup
	for i := range spec.Tracks {
		wg.Add(1)
		go func(def *domain.TrackDef, result *domain.TrackResult) {
			defer wg.Done()
			o.runTrack(ctx, def, result, logger)
		}(&spec.Tracks[i], &run.Tracks[i])
	}

	// join: единственная точка синхронизации tracks
	wg.Wait()

	run.MarkFinished()
	telemetry.ObserveRun(string(run.Status))

	logger.Info("run finished",
		"status", run.Status,
		"duration", run.Duration(),
	)

	o.recordRunFinished(ctx, run)

	return run, nil
}

// recordRunStarted сохраняет новый run и публикует run.started.
// Ошибки истории и событий не влияют на выполнение pipeline.
func (o *Orchestrator) recordRunStarted(ctx context.Context, run *domain.Run) {
	if o.runRepo != nil {
		if err := o.runRepo.Create(ctx, run); err != nil {
			o.logger.Warn("failed to persist run", "run_id", run.ID, "error", err)
		}
	}

	if o.trackRepo != nil {
		for i := range run.Tracks {
			if err := o.trackRepo.Create(ctx, &run.Tracks[i]); err != nil {
				o.logger.Warn("failed to persist track",
					"run_id", run.ID,
					"track", run.Tracks[i].Name,
					"error", err,
				)
			}
		}
	}

	if o.publisher != nil {
		if err := o.publisher.PublishRunStarted(ctx, run); err != nil {
			o.logger.Warn("failed to publish run.started", "run_id", run.ID, "error", err)
		}
	}
}

// recordRunFinished сохраняет финальный статус run и публикует run.completed.
//
// Использует контекст без отмены: результат отменённого run тоже
// должен попасть в историю.
func (o *Orchestrator) recordRunFinished(ctx context.Context, run *domain.Run) {
	ctx = context.WithoutCancel(ctx)

	if o.runRepo != nil {
		if err := o.runRepo.Update(ctx, run); err != nil {
			o.logger.Warn("failed to persist run result", "run_id", run.ID, "error", err)
		}
	}

	if o.publisher != nil {
		if err := o.publisher.PublishRunCompleted(ctx, run); err != nil {
			o.logger.Warn("failed to publish run.completed", "run_id", run.ID, "error", err)
		}
	}
}

// recordTrackFinished сохраняет результат track и публикует track.completed.
func (o *Orchestrator) recordTrackFinished(ctx context.Context, track *domain.TrackResult) {
	ctx = context.WithoutCancel(ctx)

	if o.trackRepo != nil {
		if err := o.trackRepo.Update(ctx, track); err != nil {
			o.logger.Warn("failed to persist track result",
				"run_id", track.RunID,
				"track", track.Name,
				"error", err,
			)
		}
	}

	if o.publisher != nil {
		if err := o.publisher.PublishTrackCompleted(ctx, track); err != nil {
			o.logger.Warn("failed to publish track.completed",
				"run_id", track.RunID,
				"track", track.Name,
				"error", err,
			)
		}
	}
}
