package node

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ошибки выделения нод.
var (
	// ErrUnknownSelector — в пуле нет нод с запрошенной меткой.
	ErrUnknownSelector = errors.New("unknown node selector")
)

// Handle — выданная worker-нода.
//
// Handle принадлежит ровно одному track от Acquire до Release.
type Handle struct {
	// ID — уникальный идентификатор выдачи.
	ID uuid.UUID

	// Selector — метка, по которой нода была запрошена.
	Selector string

	// Node — имя конкретной ноды (например, "linux-1").
	Node string

	// AcquiredAt — время выдачи.
	AcquiredAt time.Time

	releaseOnce sync.Once
	release     func()
}

// Provider — интерфейс выделения worker-нод.
type Provider interface {
	// Acquire блокируется, пока не освободится нода с меткой selector
	// или не будет отменён ctx.
	Acquire(ctx context.Context, selector string) (*Handle, error)

	// Release возвращает ноду в пул. Повторный Release безопасен.
	Release(h *Handle)
}
