package events

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"shipping-management/internal/domain/uow"
)

// Handler reacts to an event. A returned error is logged and never reaches the publisher.
type Handler func(ctx context.Context, event Event) error

type subscription struct {
	name    string
	handler Handler
}

// Bus dispatches events synchronously to subscribers. When a unit of work is set every
// handler runs in its own savepoint, so a failing handler leaves the caller's writes intact.
type Bus struct {
	mu   sync.RWMutex
	subs map[Name][]subscription
	uow  uow.UnitOfWork
	log  *zap.Logger
}

func NewBus(unitOfWork uow.UnitOfWork, log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{subs: make(map[Name][]subscription), uow: unitOfWork, log: log}
}

// Subscribe registers handler for the given events under a descriptive name used in logs.
func (b *Bus) Subscribe(name string, handler Handler, events ...Name) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range events {
		b.subs[e] = append(b.subs[e], subscription{name: name, handler: handler})
	}
}

// Publish delivers event to every subscriber in registration order.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[event.Name]...)
	b.mu.RUnlock()

	for _, s := range subs {
		if err := b.run(ctx, s, event); err != nil {
			b.log.Warn("Event handler failed",
				zap.String("handler", s.name),
				zap.String("event_name", string(event.Name)),
				zap.String("shipment_id", event.ShipmentID.String()),
				zap.Error(err),
				zap.String("event", "event_handler_failed"),
			)
		}
	}
}

func (b *Bus) run(ctx context.Context, s subscription, event Event) error {
	call := func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("handler panic: %v", r)
			}
		}()
		return s.handler(ctx, event)
	}
	if b.uow == nil {
		return call(ctx)
	}
	return b.uow.WithinTransaction(ctx, call)
}
