package domain

import "strings"

// PipelineSpec — описание pipeline: набор независимых tracks.
//
// PipelineSpec — неизменяемая структура данных, которая строится один раз
// при старте процесса (из встроенного описания или из JSON-файла) и
// передаётся по ссылке в Orchestrator. Никакого глобального изменяемого
// состояния pipeline в процессе нет.
type PipelineSpec struct {
	// Name — имя pipeline (например, "conveyor").
	Name string `json:"name"`

	// Revision — ревизия исходного кода, которую собирает pipeline.
	// Подставляется в checkout-stage каждого track.
	Revision string `json:"revision"`

	// Tracks — независимые варианты сборки.
	// Выполняются параллельно, каждый на своём worker'е.
	Tracks []TrackDef `json:"tracks"`
}

// TrackDef — один вариант сборки: упорядоченная последовательность stages
// плюс обязательный селектор worker-ноды.
//
// Track неизменяем после конструирования. Набор stages объявляется при
// конструировании и не вычисляется: например, у win64-track в этой
// конфигурации нет test-stage.
type TrackDef struct {
	// Name — уникальное имя track (например, "linux", "win64").
	Name string `json:"name"`

	// NodeSelector — метка worker-ноды, на которой должен выполняться track.
	// В текущем развёртывании оба track используют "linux" — Windows-сборка
	// производится кросс-компиляцией, а не на Windows-worker'е.
	NodeSelector string `json:"node_selector"`

	// Env — overlay переменных окружения, действующий для всех actions
	// внутри track. Формат биндингов описан в пакете env.
	// По умолчанию — пустой список.
	Env []string `json:"env,omitempty"`

	// Stages — упорядоченная последовательность stages.
	// Порядок фиксирован: stages никогда не переупорядочиваются
	// и не выполняются параллельно.
	Stages []StageDef `json:"stages"`
}

// StageDef — именованная фаза track (checkout, prepare, test, build).
//
// Stage выполняет свои actions строго по порядку. Первый упавший action
// прерывает stage; retry-логики у stage нет.
type StageDef struct {
	// Name — имя stage, уникальное в пределах track.
	Name string `json:"name"`

	// Actions — упорядоченная последовательность внешних команд.
	Actions []ActionDef `json:"actions"`
}

// ActionDef — один вызов внешней команды.
//
// Action непрозрачен для оркестратора: известны только программа,
// аргументы и результат (exit status). Внутреннего состояния у action нет.
type ActionDef struct {
	// Program — имя исполняемой программы.
	Program string `json:"program"`

	// Args — аргументы команды.
	Args []string `json:"args,omitempty"`
}

// String возвращает командную строку action для логов и сообщений об ошибках.
func (a ActionDef) String() string {
	if len(a.Args) == 0 {
		return a.Program
	}
	return a.Program + " " + strings.Join(a.Args, " ")
}

// Track возвращает track по имени или nil.
func (s *PipelineSpec) Track(name string) *TrackDef {
	for i := range s.Tracks {
		if s.Tracks[i].Name == name {
			return &s.Tracks[i]
		}
	}
	return nil
}

// Stage возвращает stage по имени или nil.
func (t *TrackDef) Stage(name string) *StageDef {
	for i := range t.Stages {
		if t.Stages[i].Name == name {
			return &t.Stages[i]
		}
	}
	return nil
}
