package node

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Pool — локальный Provider с фиксированной ёмкостью на метку.
//
// Для каждой метки пул держит буферизованный канал с именами свободных
// нод. Acquire забирает ноду из канала (блокируясь, если все заняты),
// Release возвращает её обратно.
type Pool struct {
	slots  map[string]chan string
	logger *slog.Logger
}

// NewPool создаёт пул. capacity — количество worker-нод на метку,
// например {"linux": 2}. Значения меньше 1 трактуются как 1.
func NewPool(capacity map[string]int, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}

	slots := make(map[string]chan string, len(capacity))
	for label, n := range capacity {
		if n < 1 {
			n = 1
		}
		ch := make(chan string, n)
		for i := 1; i <= n; i++ {
			ch <- fmt.Sprintf("%s-%d", label, i)
		}
		slots[label] = ch
	}

	return &Pool{slots: slots, logger: logger}
}

// Acquire блокируется до освобождения ноды с меткой selector.
func (p *Pool) Acquire(ctx context.Context, selector string) (*Handle, error) {
	ch, ok := p.slots[selector]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSelector, selector)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case name := <-ch:
		h := &Handle{
			ID:         uuid.New(),
			Selector:   selector,
			Node:       name,
			AcquiredAt: time.Now(),
		}
		h.release = func() {
			ch <- name
			p.logger.Debug("node released", "node", name)
		}

		p.logger.Debug("node acquired", "node", name, "selector", selector)
		return h, nil
	}
}

// Release возвращает ноду в пул. Повторный Release безопасен.
func (p *Pool) Release(h *Handle) {
	if h == nil || h.release == nil {
		return
	}
	h.releaseOnce.Do(h.release)
}
