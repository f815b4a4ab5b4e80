package domain

// RunStatus — статус выполнения pipeline run.
//
// Жизненный цикл:
//
//	PENDING → RUNNING → SUCCEEDED
//	                  ↘ FAILED
//	          (или) → CANCELLED (отмена всего run)
type RunStatus string

const (
	// RunStatusPending — run создан, но ещё не начал выполняться.
	RunStatusPending RunStatus = "PENDING"

	// RunStatusRunning — tracks выполняются.
	RunStatusRunning RunStatus = "RUNNING"

	// RunStatusSucceeded — все tracks завершились успешно.
	RunStatusSucceeded RunStatus = "SUCCEEDED"

	// RunStatusFailed — хотя бы один track завершился с ошибкой.
	RunStatusFailed RunStatus = "FAILED"

	// RunStatusCancelled — run отменён (контекст оркестратора).
	RunStatusCancelled RunStatus = "CANCELLED"
)

// IsTerminal возвращает true, если статус финальный.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// TrackStatus — статус выполнения одного track.
//
// Жизненный цикл:
//
//	PENDING → RUNNING → SUCCEEDED
//	                  ↘ FAILED (первый упавший stage)
//	                  ↘ CANCELLED (отмена run; падение соседнего track
//	                    отмену НЕ вызывает)
type TrackStatus string

const (
	// TrackStatusPending — track ожидает worker-ноду.
	TrackStatusPending TrackStatus = "PENDING"

	// TrackStatusRunning — track выполняет stages.
	TrackStatusRunning TrackStatus = "RUNNING"

	// TrackStatusSucceeded — все stages завершились успешно.
	TrackStatusSucceeded TrackStatus = "SUCCEEDED"

	// TrackStatusFailed — stage завершился с ошибкой, остальные пропущены.
	TrackStatusFailed TrackStatus = "FAILED"

	// TrackStatusCancelled — выполнение прервано отменой run.
	TrackStatusCancelled TrackStatus = "CANCELLED"
)

// IsTerminal возвращает true, если статус финальный.
func (s TrackStatus) IsTerminal() bool {
	switch s {
	case TrackStatusSucceeded, TrackStatusFailed, TrackStatusCancelled:
		return true
	default:
		return false
	}
}

// StageStatus — статус выполнения stage внутри track.
type StageStatus string

const (
	// StageStatusPending — stage ещё не начался.
	StageStatusPending StageStatus = "PENDING"

	// StageStatusRunning — stage выполняет actions.
	StageStatusRunning StageStatus = "RUNNING"

	// StageStatusSucceeded — все actions stage завершились успешно.
	StageStatusSucceeded StageStatus = "SUCCEEDED"

	// StageStatusFailed — action вернул ненулевой exit status.
	StageStatusFailed StageStatus = "FAILED"

	// StageStatusSkipped — stage не выполнялся из-за падения предыдущего.
	StageStatusSkipped StageStatus = "SKIPPED"
)
