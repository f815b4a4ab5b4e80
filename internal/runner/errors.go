package runner

import (
	"errors"
	"fmt"

	"github.com/shaiso/Conveyor/internal/domain"
)

// Ошибки выполнения actions.
var (
	// ErrActionFailed — внешняя команда вернула ненулевой exit status.
	ErrActionFailed = errors.New("action failed")
)

// ActionError — ошибка выполнения action с контекстом.
type ActionError struct {
	// Action — упавшая команда.
	Action domain.ActionDef

	// ExitCode — exit status команды; -1, если команда не запустилась.
	ExitCode int

	// Err — базовая ошибка запуска или ErrActionFailed.
	Err error
}

// Error реализует интерфейс error.
func (e *ActionError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("action %q: exit status %d", e.Action.String(), e.ExitCode)
	}
	return fmt.Sprintf("action %q: %v", e.Action.String(), e.Err)
}

// Unwrap возвращает базовую ошибку.
func (e *ActionError) Unwrap() error {
	return e.Err
}
