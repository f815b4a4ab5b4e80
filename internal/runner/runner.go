package runner

import (
	"context"

	"github.com/shaiso/Conveyor/internal/domain"
)

// Options — окружение выполнения одного action.
type Options struct {
	// Dir — рабочая директория команды.
	// Пустая строка — текущая директория процесса.
	Dir string

	// Env — полное окружение команды (результат env.Stack.Environ).
	// nil означает ambient-окружение процесса.
	Env []string
}

// Runner — интерфейс выполнения одного action.
//
// Run блокируется до завершения команды и возвращает nil при нулевом
// exit status, *ActionError при ненулевом либо ошибку запуска.
// Отмена ctx прерывает команду.
type Runner interface {
	Run(ctx context.Context, action domain.ActionDef, opts Options) error
}
