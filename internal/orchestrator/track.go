package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/env"
	"github.com/shaiso/Conveyor/internal/node"
	"github.com/shaiso/Conveyor/internal/runner"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// execContext — контекст выполнения одного track.
//
// Создаётся после получения worker-ноды и уничтожается по завершении
// последнего stage. Принадлежит горутине своего track целиком:
// ни нода, ни стек overlays не видны соседним tracks.
type execContext struct {
	handle *node.Handle
	stack  *env.Stack
	dir    string
	logger *slog.Logger
}

// runTrack выполняет один track от выделения ноды до терминального статуса.
func (o *Orchestrator) runTrack(ctx context.Context, def *domain.TrackDef, result *domain.TrackResult, logger *slog.Logger) {
	logger = telemetry.WithTrack(logger, def.Name)

	// Один worker на весь track; Acquire блокируется до освобождения
	waitStart := time.Now()
	handle, err := o.provider.Acquire(ctx, def.NodeSelector)
	if err != nil {
		if ctx.Err() != nil {
			result.MarkCancelled()
			logger.Warn("track cancelled while waiting for node")
		} else {
			result.MarkFailed(fmt.Sprintf("acquire node: %v", err))
			logger.Error("failed to acquire node", "selector", def.NodeSelector, "error", err)
		}
		o.finishTrack(ctx, result, logger)
		return
	}
	defer o.provider.Release(handle)
	telemetry.ObserveNodeWait(def.NodeSelector, time.Since(waitStart))

	result.MarkRunning(handle.Node)
	logger = logger.With("node", handle.Node)
	logger.Info("track started", "stages", len(def.Stages))

	ec := &execContext{
		handle: handle,
		stack:  env.NewStack(),
		logger: logger,
	}
	if o.workDir != "" {
		ec.dir = filepath.Join(o.workDir, handle.Node)
	}

	// Overlay track'а действует для всех его stages и снимается
	// на любом пути выхода
	err = ec.stack.Apply(def.Env, func() error {
		return o.runStages(ctx, ec, def, result)
	})

	switch {
	case err == nil:
		result.MarkSucceeded()
	case ctx.Err() != nil:
		result.MarkCancelled()
	default:
		result.MarkFailed(err.Error())
	}

	o.finishTrack(ctx, result, logger)
}

// finishTrack учитывает метрики, сохраняет и публикует результат track.
func (o *Orchestrator) finishTrack(ctx context.Context, result *domain.TrackResult, logger *slog.Logger) {
	telemetry.ObserveTrack(result.Name, string(result.Status))

	switch result.Status {
	case domain.TrackStatusSucceeded:
		logger.Info("track succeeded", "duration", result.Duration())
	case domain.TrackStatusCancelled:
		logger.Warn("track cancelled")
	default:
		logger.Error("track failed",
			"failed_stage", result.FailedStage(),
			"error", result.Error,
		)
	}

	o.recordTrackFinished(ctx, result)
}

// runStages выполняет stages строго в объявленном порядке.
//
// Первый упавший stage прерывает track: оставшиеся stages помечаются
// SKIPPED и не выполняются.
func (o *Orchestrator) runStages(ctx context.Context, ec *execContext, def *domain.TrackDef, result *domain.TrackResult) error {
	for i := range def.Stages {
		stageDef := &def.Stages[i]
		stageResult := &result.Stages[i]
		logger := telemetry.WithStage(ec.logger, stageDef.Name)

		stageResult.MarkRunning()
		logger.Info("stage started", "actions", len(stageDef.Actions))

		err := o.runActions(ctx, ec, stageDef)
		if err != nil {
			stageResult.MarkFailed(err.Error())
			telemetry.ObserveStage(def.Name, stageDef.Name, string(stageResult.Status), stageResult.Duration())
			logger.Warn("stage failed", "error", err)

			for j := i + 1; j < len(result.Stages); j++ {
				result.Stages[j].MarkSkipped()
			}

			return &StageError{Track: def.Name, Stage: stageDef.Name, Err: err}
		}

		stageResult.MarkSucceeded()
		telemetry.ObserveStage(def.Name, stageDef.Name, string(stageResult.Status), stageResult.Duration())
		logger.Info("stage succeeded", "duration", stageResult.Duration())
	}

	return nil
}

// runActions выполняет actions stage строго по порядку.
// Первый упавший action прерывает stage, остальные не выполняются.
func (o *Orchestrator) runActions(ctx context.Context, ec *execContext, stage *domain.StageDef) error {
	for _, action := range stage.Actions {
		opts := runner.Options{
			Dir: ec.dir,
			Env: ec.stack.Environ(o.baseEnv),
		}

		if err := o.runner.Run(ctx, action, opts); err != nil {
			return err
		}
	}

	return nil
}
