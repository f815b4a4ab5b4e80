package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shaiso/Conveyor/internal/domain"
)

// testLocal возвращает Local с подавленным выводом.
func testLocal() *Local {
	return NewLocal(Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
}

func TestLocal_Success(t *testing.T) {
	action := domain.ActionDef{Program: "sh", Args: []string{"-c", "exit 0"}}

	if err := testLocal().Run(context.Background(), action, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLocal_ExitStatus(t *testing.T) {
	action := domain.ActionDef{Program: "sh", Args: []string{"-c", "exit 3"}}

	err := testLocal().Run(context.Background(), action, Options{})
	if !errors.Is(err, ErrActionFailed) {
		t.Fatalf("expected ErrActionFailed, got %v", err)
	}

	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("expected *ActionError, got %T", err)
	}
	if actionErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", actionErr.ExitCode)
	}
}

func TestLocal_MissingProgram(t *testing.T) {
	action := domain.ActionDef{Program: "definitely-not-a-real-binary-2718"}

	err := testLocal().Run(context.Background(), action, Options{})

	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("expected *ActionError, got %v", err)
	}
	if actionErr.ExitCode != -1 {
		t.Errorf("exit code = %d, want -1", actionErr.ExitCode)
	}
}

func TestLocal_Env(t *testing.T) {
	// Команда видит ровно то окружение, которое передано в Options
	action := domain.ActionDef{Program: "sh", Args: []string{"-c", `test "$CHANNEL" = beta`}}

	err := testLocal().Run(context.Background(), action, Options{
		Env: []string{"PATH=/usr/bin:/bin", "CHANNEL=beta"},
	})
	if err != nil {
		t.Fatalf("env not propagated: %v", err)
	}

	err = testLocal().Run(context.Background(), action, Options{
		Env: []string{"PATH=/usr/bin:/bin"},
	})
	if err == nil {
		t.Fatal("expected failure without CHANNEL in env")
	}
}

func TestLocal_Output(t *testing.T) {
	var out bytes.Buffer
	local := NewLocal(Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stdout: &out,
		Stderr: io.Discard,
	})

	action := domain.ActionDef{Program: "sh", Args: []string{"-c", "echo hello"}}
	if err := local.Run(context.Background(), action, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "hello\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestLocal_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	action := domain.ActionDef{Program: "sleep", Args: []string{"30"}}
	done := make(chan error, 1)
	go func() {
		done <- testLocal().Run(ctx, action, Options{})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled action did not return")
	}
}
