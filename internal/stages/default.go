package stages

import "github.com/shaiso/Conveyor/internal/domain"

// Таргет кросс-компиляции под 64-битный Windows (GNU ABI).
const winTarget = "x86_64-pc-windows-gnu"

// cargoPath добавляет локальную директорию toolchain в начало PATH.
// Применяется ко всем actions обоих tracks.
const cargoPath = "PATH+CARGO=$HOME/.cargo/bin"

// Default возвращает встроенное описание pipeline для ревизии rev.
//
// Два track, оба на worker-нодах с меткой "linux" (Windows-сборка
// производится кросс-компиляцией, Windows-worker не нужен):
//
//	linux — checkout → prepare(stable) → test → build (нативный x86-64)
//	win64 — checkout → prepare(beta, +win-target) → build (кросс)
//
// У win64 нет test-stage: набор stages объявлен здесь, а не вычисляется.
func Default(rev string) *domain.PipelineSpec {
	return &domain.PipelineSpec{
		Name:     "conveyor",
		Revision: rev,
		Tracks: []domain.TrackDef{
			{
				Name:         "linux",
				NodeSelector: "linux",
				Env:          []string{cargoPath},
				Stages: []domain.StageDef{
					Checkout(rev),
					Prepare("stable", nil),
					Test(),
					Build(""),
				},
			},
			{
				Name:         "win64",
				NodeSelector: "linux",
				Env:          []string{cargoPath},
				Stages: []domain.StageDef{
					Checkout(rev),
					Prepare("beta", []string{winTarget}),
					Build(winTarget),
				},
			},
		},
	}
}
