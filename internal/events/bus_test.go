package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestPublishWithoutHandlersIsNoOp(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	// Must return without blocking or panicking.
	bus.Publish(context.Background(), New(EventTicketCreated, "ticket-1", nil))
}

func TestPublishFansOutToAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())

	var mu sync.Mutex
	calls := 0
	record := func(context.Context, Event) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return nil
	}
	bus.Subscribe(EventTicketAssigned, record)
	bus.Subscribe(EventTicketAssigned, record)

	bus.Publish(context.Background(), New(EventTicketAssigned, "ticket-1", nil))

	// Publish waits for every handler, so no further synchronization needed.
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2 (duplicate subscription delivers twice)", calls)
	}
}

func TestPublishIsolatesFailingAndPanickingHandlers(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())

	var mu sync.Mutex
	var seen []string
	bus.Subscribe(EventTicketResolved, func(context.Context, Event) error {
		return errors.New("downstream unavailable")
	})
	bus.Subscribe(EventTicketResolved, func(context.Context, Event) error {
		panic("handler bug")
	})
	bus.Subscribe(EventTicketResolved, func(_ context.Context, event Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, event.TicketID)
		return nil
	})

	bus.Publish(context.Background(), New(EventTicketResolved, "ticket-1", nil))

	if len(seen) != 1 || seen[0] != "ticket-1" {
		t.Fatalf("healthy handler must still run, got %v", seen)
	}
}

func TestPublishAllPreservesOrder(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())

	var mu sync.Mutex
	var order []EventType
	record := func(_ context.Context, event Event) error {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, event.Type)
		return nil
	}
	bus.Subscribe(EventTicketCreated, record)
	bus.Subscribe(EventTicketAssigned, record)
	bus.Subscribe(EventTicketResolved, record)

	bus.PublishAll(context.Background(), []Event{
		New(EventTicketCreated, "ticket-1", nil),
		New(EventTicketAssigned, "ticket-1", nil),
		New(EventTicketResolved, "ticket-1", nil),
	})

	want := []EventType{EventTicketCreated, EventTicketAssigned, EventTicketResolved}
	if len(order) != len(want) {
		t.Fatalf("deliveries = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("delivery %d = %v, want %v (batch order must hold)", i, order[i], want[i])
		}
	}
}

func TestSubscribeDuringPublishDoesNotRace(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	bus.Subscribe(EventTicketClosed, func(context.Context, Event) error { return nil })

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			bus.Publish(context.Background(), New(EventTicketClosed, "ticket-1", nil))
		}
	}()
	for i := 0; i < 50; i++ {
		bus.Subscribe(EventTicketClosed, func(context.Context, Event) error { return nil })
	}
	<-done
}
