package engine

import "errors"

// Ошибки валидации PipelineSpec.
var (
	// ErrEmptySpec — spec отсутствует или не содержит tracks.
	ErrEmptySpec = errors.New("pipeline spec has no tracks")

	// ErrEmptyTrackName — track не имеет имени.
	ErrEmptyTrackName = errors.New("track has empty name")

	// ErrDuplicateTrack — несколько tracks с одинаковым именем.
	ErrDuplicateTrack = errors.New("duplicate track name")

	// ErrEmptyNodeSelector — track не указал селектор worker-ноды.
	ErrEmptyNodeSelector = errors.New("track has empty node selector")

	// ErrEmptyStages — track не содержит stages.
	ErrEmptyStages = errors.New("track has no stages")

	// ErrEmptyStageName — stage не имеет имени.
	ErrEmptyStageName = errors.New("stage has empty name")

	// ErrDuplicateStage — несколько stages с одинаковым именем в одном track.
	ErrDuplicateStage = errors.New("duplicate stage name")

	// ErrEmptyActions — stage не содержит actions.
	ErrEmptyActions = errors.New("stage has no actions")

	// ErrEmptyProgram — action не указал программу.
	ErrEmptyProgram = errors.New("action has empty program")
)

// ValidationError — ошибка валидации с контекстом.
type ValidationError struct {
	Track   string // имя track, где произошла ошибка
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.Track != "" {
		return "track " + e.Track + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(track, field, message string, err error) *ValidationError {
	return &ValidationError{
		Track:   track,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
