package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run — один запуск pipeline.
//
// Run создаётся когда:
// - Пользователь запускает pipeline вручную (conveyor run)
// - Scheduler запускает pipeline по расписанию (conveyor serve --cron)
//
// Run владеет результатами всех tracks и агрегирует общий статус:
// SUCCEEDED только если все tracks SUCCEEDED.
type Run struct {
	// ID — уникальный идентификатор run.
	ID uuid.UUID `json:"id"`

	// Pipeline — имя pipeline.
	Pipeline string `json:"pipeline"`

	// Revision — собираемая ревизия исходного кода.
	Revision string `json:"revision"`

	// Status — текущий статус выполнения.
	Status RunStatus `json:"status"`

	// Tracks — результаты tracks в порядке объявления в PipelineSpec.
	Tracks []TrackResult `json:"tracks"`

	// StartedAt — время начала выполнения (когда статус стал RUNNING).
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения всех tracks.
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Error — текст ошибки, если run завершился с FAILED.
	Error string `json:"error,omitempty"`

	// CreatedAt — время создания run.
	CreatedAt time.Time `json:"created_at"`
}

// NewRun создаёт run в статусе PENDING для заданного spec.
func NewRun(spec *PipelineSpec) *Run {
	run := &Run{
		ID:        uuid.New(),
		Pipeline:  spec.Name,
		Revision:  spec.Revision,
		Status:    RunStatusPending,
		CreatedAt: time.Now(),
	}

	run.Tracks = make([]TrackResult, len(spec.Tracks))
	for i := range spec.Tracks {
		run.Tracks[i] = newTrackResult(run.ID, &spec.Tracks[i])
	}

	return run
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если run ещё не завершён.
func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}

// IsFinished возвращает true, если run завершён (в любом статусе).
func (r *Run) IsFinished() bool {
	return r.Status.IsTerminal()
}

// MarkRunning переводит run в статус RUNNING.
func (r *Run) MarkRunning() {
	now := time.Now()
	r.Status = RunStatusRunning
	r.StartedAt = &now
}

// MarkFinished выставляет финальный статус run по результатам tracks:
// SUCCEEDED только если все tracks SUCCEEDED, CANCELLED если хотя бы один
// track отменён, иначе FAILED.
func (r *Run) MarkFinished() {
	now := time.Now()
	r.FinishedAt = &now

	status := RunStatusSucceeded
	for i := range r.Tracks {
		track := &r.Tracks[i]

		switch track.Status {
		case TrackStatusCancelled:
			status = RunStatusCancelled
		case TrackStatusSucceeded:
			// не меняет агрегат
		default:
			if status != RunStatusCancelled {
				status = RunStatusFailed
			}
			if r.Error == "" {
				r.Error = "track " + track.Name + ": " + track.Error
			}
		}
	}

	r.Status = status
}

// TrackResult — результат выполнения одного track.
type TrackResult struct {
	// ID — уникальный идентификатор выполнения track.
	ID uuid.UUID `json:"id"`

	// RunID — ссылка на родительский run.
	RunID uuid.UUID `json:"run_id"`

	// Name — имя track из TrackDef.
	Name string `json:"name"`

	// NodeSelector — метка worker-ноды, запрошенная track'ом.
	NodeSelector string `json:"node_selector"`

	// Node — идентификатор worker-ноды, на которой выполнялся track.
	Node string `json:"node,omitempty"`

	// Status — статус track.
	Status TrackStatus `json:"status"`

	// Stages — результаты stages в порядке объявления.
	Stages []StageResult `json:"stages"`

	// StartedAt — время получения worker-ноды и начала первого stage.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения последнего выполненного stage.
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Error — текст ошибки упавшего stage.
	Error string `json:"error,omitempty"`
}

// newTrackResult создаёт TrackResult в статусе PENDING со всеми stages.
func newTrackResult(runID uuid.UUID, def *TrackDef) TrackResult {
	result := TrackResult{
		ID:           uuid.New(),
		RunID:        runID,
		Name:         def.Name,
		NodeSelector: def.NodeSelector,
		Status:       TrackStatusPending,
	}

	result.Stages = make([]StageResult, len(def.Stages))
	for i := range def.Stages {
		result.Stages[i] = StageResult{
			Name:   def.Stages[i].Name,
			Status: StageStatusPending,
		}
	}

	return result
}

// Duration возвращает продолжительность выполнения track.
func (t *TrackResult) Duration() time.Duration {
	if t.StartedAt == nil || t.FinishedAt == nil {
		return 0
	}
	return t.FinishedAt.Sub(*t.StartedAt)
}

// MarkRunning переводит track в статус RUNNING на ноде node.
func (t *TrackResult) MarkRunning(node string) {
	now := time.Now()
	t.Status = TrackStatusRunning
	t.Node = node
	t.StartedAt = &now
}

// MarkSucceeded переводит track в статус SUCCEEDED.
func (t *TrackResult) MarkSucceeded() {
	now := time.Now()
	t.Status = TrackStatusSucceeded
	t.FinishedAt = &now
}

// MarkFailed переводит track в статус FAILED.
func (t *TrackResult) MarkFailed(errMsg string) {
	now := time.Now()
	t.Status = TrackStatusFailed
	t.Error = errMsg
	t.FinishedAt = &now
}

// MarkCancelled переводит track в статус CANCELLED.
func (t *TrackResult) MarkCancelled() {
	now := time.Now()
	t.Status = TrackStatusCancelled
	t.FinishedAt = &now
}

// FailedStage возвращает имя упавшего stage или "".
func (t *TrackResult) FailedStage() string {
	for i := range t.Stages {
		if t.Stages[i].Status == StageStatusFailed {
			return t.Stages[i].Name
		}
	}
	return ""
}

// StageResult — результат выполнения одного stage.
type StageResult struct {
	// Name — имя stage из StageDef.
	Name string `json:"name"`

	// Status — статус stage.
	Status StageStatus `json:"status"`

	// StartedAt — время начала первого action.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения (успешного или с ошибкой).
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Error — текст ошибки упавшего action.
	Error string `json:"error,omitempty"`
}

// Duration возвращает продолжительность выполнения stage.
func (s *StageResult) Duration() time.Duration {
	if s.StartedAt == nil || s.FinishedAt == nil {
		return 0
	}
	return s.FinishedAt.Sub(*s.StartedAt)
}

// MarkRunning переводит stage в статус RUNNING.
func (s *StageResult) MarkRunning() {
	now := time.Now()
	s.Status = StageStatusRunning
	s.StartedAt = &now
}

// MarkSucceeded переводит stage в статус SUCCEEDED.
func (s *StageResult) MarkSucceeded() {
	now := time.Now()
	s.Status = StageStatusSucceeded
	s.FinishedAt = &now
}

// MarkFailed переводит stage в статус FAILED.
func (s *StageResult) MarkFailed(errMsg string) {
	now := time.Now()
	s.Status = StageStatusFailed
	s.Error = errMsg
	s.FinishedAt = &now
}

// MarkSkipped помечает stage как пропущенный.
func (s *StageResult) MarkSkipped() {
	s.Status = StageStatusSkipped
}
