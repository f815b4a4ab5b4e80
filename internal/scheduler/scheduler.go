package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Conveyor/internal/domain"
)

// ErrNoExecutor возвращается, если Scheduler создан без executor.
var ErrNoExecutor = errors.New("scheduler: executor is required")

// Executor запускает pipeline. Реализуется orchestrator.Orchestrator.
type Executor interface {
	Execute(ctx context.Context, spec *domain.PipelineSpec) (*domain.Run, error)
}

// Scheduler — планировщик периодических запусков pipeline.
type Scheduler struct {
	executor Executor
	spec     *domain.PipelineSpec
	cronExpr string
	logger   *slog.Logger
}

// Config — конфигурация Scheduler.
type Config struct {
	Executor Executor
	Spec     *domain.PipelineSpec
	CronExpr string // cron-выражение, 5 полей
	Logger   *slog.Logger
}

// New создаёт новый Scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Executor == nil {
		return nil, ErrNoExecutor
	}
	if cfg.Spec == nil {
		return nil, errors.New("scheduler: spec is required")
	}
	if err := ValidateCronExpr(cfg.CronExpr); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		executor: cfg.Executor,
		spec:     cfg.Spec,
		cronExpr: cfg.CronExpr,
		logger:   logger,
	}, nil
}

// Run выполняет цикл планировщика до отмены контекста.
//
// Каждый тик запускает pipeline целиком и ждёт его завершения.
// Ошибка или падение одного запуска не останавливает цикл.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"pipeline", s.spec.Name,
		"cron", s.cronExpr,
	)

	for {
		next, err := NextRun(s.cronExpr, time.Now())
		if err != nil {
			return fmt.Errorf("calculate next run: %w", err)
		}

		s.logger.Debug("waiting for next run", "next", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
		}

		s.tick(ctx)
	}
}

// tick выполняет один запуск pipeline.
func (s *Scheduler) tick(ctx context.Context) {
	started := time.Now()

	run, err := s.executor.Execute(ctx, s.spec)
	if err != nil {
		s.logger.Error("scheduled run failed to start",
			"pipeline", s.spec.Name,
			"error", err,
		)
		return
	}

	s.logger.Info("scheduled run finished",
		"run_id", run.ID,
		"pipeline", s.spec.Name,
		"status", run.Status,
		"duration", time.Since(started),
	)
}
