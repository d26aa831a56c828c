package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Handler handles a published event. A failing handler is logged and never
// blocks sibling handlers or the publisher.
type Handler func(ctx context.Context, event Event) error

// Bus is the in-process publish/subscribe dispatcher that decouples ticket
// mutations from their side effects.
type Bus interface {
	Subscribe(eventType EventType, handler Handler)
	Publish(ctx context.Context, event Event)
	PublishAll(ctx context.Context, batch []Event)
}

type inMemoryBus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	logger   *zap.Logger
}

// NewInMemoryBus creates a bus instance. The composition root owns the single
// instance and injects it into the services that mutate tickets.
func NewInMemoryBus(logger *zap.Logger) Bus {
	return &inMemoryBus{
		handlers: make(map[EventType][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for the given event type. Repeated
// subscription of the same handler yields repeated delivery.
func (b *inMemoryBus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish fans the event out to every registered handler concurrently and
// waits for all of them to settle. No handlers is a silent no-op. Delivery is
// at-most-once, best-effort: failures and panics are logged and dropped.
func (b *inMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers registered for event", zap.String("event_type", string(event.Type)))
		return
	}

	var wg sync.WaitGroup
	for _, handler := range handlers {
		wg.Add(1)
		go func(h Handler) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panicked",
						zap.String("event_type", string(event.Type)),
						zap.String("ticket_id", event.TicketID),
						zap.Any("panic", r))
				}
			}()
			if err := h(ctx, event); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", string(event.Type)),
					zap.String("ticket_id", event.TicketID),
					zap.Error(err))
			}
		}(handler)
	}
	wg.Wait()
}

// PublishAll delivers events strictly in slice order, each fully fanned out
// before the next event begins.
func (b *inMemoryBus) PublishAll(ctx context.Context, batch []Event) {
	for _, event := range batch {
		b.Publish(ctx, event)
	}
}
