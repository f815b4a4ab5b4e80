package node

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testPool(capacity map[string]int) *Pool {
	return NewPool(capacity, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPool_AcquireRelease(t *testing.T) {
	pool := testPool(map[string]int{"linux": 2})
	ctx := context.Background()

	h1, err := pool.Acquire(ctx, "linux")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := pool.Acquire(ctx, "linux")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h1.Node == h2.Node {
		t.Errorf("two concurrent handles share node %q", h1.Node)
	}
	if h1.Selector != "linux" {
		t.Errorf("selector = %q", h1.Selector)
	}

	pool.Release(h1)
	pool.Release(h2)
}

func TestPool_UnknownSelector(t *testing.T) {
	pool := testPool(map[string]int{"linux": 1})

	_, err := pool.Acquire(context.Background(), "windows")
	if !errors.Is(err, ErrUnknownSelector) {
		t.Fatalf("expected ErrUnknownSelector, got %v", err)
	}
}

func TestPool_BlocksUntilRelease(t *testing.T) {
	pool := testPool(map[string]int{"linux": 1})
	ctx := context.Background()

	h, err := pool.Acquire(ctx, "linux")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acquired := make(chan *Handle)
	go func() {
		h2, err := pool.Acquire(ctx, "linux")
		if err != nil {
			t.Error(err)
		}
		acquired <- h2
	}()

	// Пока нода занята, второй Acquire должен блокироваться
	select {
	case <-acquired:
		t.Fatal("Acquire returned while the only node was busy")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(h)

	select {
	case h2 := <-acquired:
		pool.Release(h2)
	case <-time.After(2 * time.Second):
		t.Fatal("Acquire did not wake up after Release")
	}
}

func TestPool_AcquireCancelled(t *testing.T) {
	pool := testPool(map[string]int{"linux": 1})

	h, err := pool.Acquire(context.Background(), "linux")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pool.Release(h)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := pool.Acquire(ctx, "linux"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestPool_DoubleRelease(t *testing.T) {
	pool := testPool(map[string]int{"linux": 1})

	h, err := pool.Acquire(context.Background(), "linux")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool.Release(h)
	pool.Release(h) // no-op

	// Ёмкость не должна вырасти от повторного Release
	h2, _ := pool.Acquire(context.Background(), "linux")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(ctx, "linux"); !errors.Is(err, context.DeadlineExceeded) {
		t.Error("double release inflated pool capacity")
	}
	pool.Release(h2)
}
