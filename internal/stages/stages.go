package stages

import "github.com/shaiso/Conveyor/internal/domain"

// Имена стандартных stages.
const (
	StageCheckout = "checkout"
	StagePrepare  = "prepare"
	StageTest     = "test"
	StageBuild    = "build"
)

// Checkout возвращает stage, приводящий рабочую директорию к ревизии rev.
//
// Последовательность: сброс рабочего дерева к ревизии, затем удаление
// всех неотслеживаемых и игнорируемых файлов. Checkout идемпотентен:
// повторный запуск даёт то же чистое состояние дерева. Выполняется
// первым stage каждого track, чтобы остальные stages видели
// воспроизводимое дерево.
func Checkout(rev string) domain.StageDef {
	return domain.StageDef{
		Name: StageCheckout,
		Actions: []domain.ActionDef{
			{Program: "git", Args: []string{"reset", "--hard", rev}},
			{Program: "git", Args: []string{"clean", "-d", "-f", "-x"}},
		},
	}
}

// Prepare возвращает stage подготовки toolchain.
//
// Последовательность: обновление установки toolchain, выбор канала
// channel для текущей директории, затем добавление кросс-таргетов.
// targets — список дополнительных таргетов компиляции; по умолчанию
// пустой (nil): для нативной сборки таргеты не добавляются.
func Prepare(channel string, targets []string) domain.StageDef {
	stage := domain.StageDef{
		Name: StagePrepare,
		Actions: []domain.ActionDef{
			{Program: "rustup", Args: []string{"update"}},
			{Program: "rustup", Args: []string{"override", "set", channel}},
		},
	}

	for _, target := range targets {
		stage.Actions = append(stage.Actions, domain.ActionDef{
			Program: "rustup",
			Args:    []string{"target", "add", target},
		})
	}

	return stage
}

// Test возвращает stage запуска тестов.
func Test() domain.StageDef {
	return domain.StageDef{
		Name: StageTest,
		Actions: []domain.ActionDef{
			{Program: "cargo", Args: []string{"test"}},
		},
	}
}

// Build возвращает stage release-сборки.
//
// target — таргет компиляции; пустая строка означает нативный таргет
// текущей платформы.
func Build(target string) domain.StageDef {
	args := []string{"build", "--release"}
	if target != "" {
		args = append(args, "--target", target)
	}

	return domain.StageDef{
		Name: StageBuild,
		Actions: []domain.ActionDef{
			{Program: "cargo", Args: args},
		},
	}
}
