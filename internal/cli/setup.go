package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Conveyor/internal/domain"
	"github.com/shaiso/Conveyor/internal/engine"
	"github.com/shaiso/Conveyor/internal/mq"
	"github.com/shaiso/Conveyor/internal/node"
	"github.com/shaiso/Conveyor/internal/orchestrator"
	"github.com/shaiso/Conveyor/internal/repo"
	"github.com/shaiso/Conveyor/internal/runner"
	"github.com/shaiso/Conveyor/internal/stages"
)

// deps — собранные зависимости orchestrator и их ресурсы.
type deps struct {
	orch      *orchestrator.Orchestrator
	pool      *pgxpool.Pool  // nil, если БД недоступна
	mqConn    *mq.Connection // nil, если RabbitMQ недоступен
	runRepo   *repo.RunRepo
	trackRepo *repo.TrackRepo
}

// Close освобождает подключения.
func (d *deps) Close() {
	if d.mqConn != nil {
		d.mqConn.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}

// setupDeps собирает orchestrator. PostgreSQL и RabbitMQ опциональны:
// при недоступности соответствующая подсистема отключается с Warn.
func setupDeps(ctx context.Context, logger *slog.Logger, workers int, workDir string) (*deps, error) {
	d := &deps{}

	// DB pool (опционально)
	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Warn("database not available, run history disabled", "error", err)
	} else {
		d.pool = pool
		d.runRepo = repo.NewRunRepo(pool)
		d.trackRepo = repo.NewTrackRepo(pool)
		logger.Info("database connected")
	}

	// RabbitMQ (опционально)
	var publisher *mq.Publisher
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}
	mqConn, err := mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, events disabled", "error", err)
	} else {
		d.mqConn = mqConn
		if err := mq.SetupTopology(mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}
		publisher = mq.NewPublisher(mqConn, logger)
		logger.Info("RabbitMQ connected")
	}

	if workers <= 0 {
		workers = 2
	}
	provider := node.NewPool(map[string]int{"linux": workers}, logger)

	orch, err := orchestrator.New(orchestrator.Config{
		Provider:  provider,
		Runner:    runner.NewLocal(runner.Config{Logger: logger}),
		RunRepo:   d.runRepo,
		TrackRepo: d.trackRepo,
		Publisher: publisher,
		WorkDir:   workDir,
		Logger:    logger,
	})
	if err != nil {
		d.Close()
		return nil, err
	}
	d.orch = orch

	return d, nil
}

// loadSpec загружает pipeline из файла или строит встроенный
// двухтрековый pipeline для revision.
func loadSpec(specPath, revision string) (*domain.PipelineSpec, error) {
	if specPath == "" {
		if revision == "" {
			return nil, fmt.Errorf("either --spec or --revision is required")
		}
		return stages.Default(revision), nil
	}

	spec, err := engine.LoadFile(specPath)
	if err != nil {
		return nil, err
	}
	if revision != "" {
		spec.Revision = revision
	}
	return spec, nil
}
