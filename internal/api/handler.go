package api

import (
	"log/slog"

	"github.com/shaiso/Conveyor/internal/repo"
)

// Handler — обработчик API истории runs.
type Handler struct {
	runRepo   *repo.RunRepo
	trackRepo *repo.TrackRepo
	logger    *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	RunRepo   *repo.RunRepo
	TrackRepo *repo.TrackRepo
	Logger    *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		runRepo:   cfg.RunRepo,
		trackRepo: cfg.TrackRepo,
		logger:    cfg.Logger,
	}
}
