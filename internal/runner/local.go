package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/shaiso/Conveyor/internal/domain"
)

// Local выполняет actions как процессы на локальной машине.
type Local struct {
	logger *slog.Logger

	// stdout/stderr — куда направляется вывод команд.
	stdout io.Writer
	stderr io.Writer
}

// Config — конфигурация Local runner.
type Config struct {
	// Logger (опционально; если nil — используется slog.Default()).
	Logger *slog.Logger

	// Stdout/Stderr — вывод команд (по умолчанию stdout/stderr процесса).
	Stdout io.Writer
	Stderr io.Writer
}

// NewLocal создаёт Local runner.
func NewLocal(cfg Config) *Local {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Local{
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run выполняет action и блокируется до его завершения.
func (l *Local) Run(ctx context.Context, action domain.ActionDef, opts Options) error {
	cmd := exec.CommandContext(ctx, action.Program, action.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	l.logger.Info("action started", "command", action.String())
	start := time.Now()

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		// Отмена контекста важнее exit status убитого процесса
		if ctxErr := ctx.Err(); ctxErr != nil {
			l.logger.Warn("action cancelled",
				"command", action.String(),
				"elapsed", elapsed,
			)
			return fmt.Errorf("action %q: %w", action.String(), ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			l.logger.Warn("action failed",
				"command", action.String(),
				"exit_code", exitErr.ExitCode(),
				"elapsed", elapsed,
			)
			return &ActionError{
				Action:   action,
				ExitCode: exitErr.ExitCode(),
				Err:      ErrActionFailed,
			}
		}

		// Команда не запустилась (нет бинаря, нет прав)
		l.logger.Error("action failed to start",
			"command", action.String(),
			"error", err,
		)
		return &ActionError{Action: action, ExitCode: -1, Err: err}
	}

	l.logger.Info("action succeeded",
		"command", action.String(),
		"elapsed", elapsed,
	)
	return nil
}
