package orchestrator

import "errors"

// Ошибки оркестратора.
var (
	// ErrNoProvider — Orchestrator сконструирован без node.Provider.
	ErrNoProvider = errors.New("node provider is required")

	// ErrNoRunner — Orchestrator сконструирован без runner.Runner.
	ErrNoRunner = errors.New("action runner is required")
)

// StageError — ошибка выполнения stage с контекстом track.
//
// Оборачивает ошибку упавшего action (runner.ActionError) либо
// ошибку отмены контекста.
type StageError struct {
	Track string // имя track
	Stage string // имя упавшего stage
	Err   error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *StageError) Error() string {
	return "track " + e.Track + ": stage " + e.Stage + ": " + e.Err.Error()
}

// Unwrap возвращает базовую ошибку.
func (e *StageError) Unwrap() error {
	return e.Err
}
