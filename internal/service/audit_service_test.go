package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
)

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditTrail
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditTrail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeAuditRepo) ListByTicket(_ context.Context, ticketID string, limit, offset int) ([]*domain.AuditTrail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.AuditTrail
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].TicketID == ticketID {
			matched = append(matched, r.entries[i])
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeAuditRepo) all() []*domain.AuditTrail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.AuditTrail(nil), r.entries...)
}

func TestAuditRecordsLifecycleEvents(t *testing.T) {
	repo := &fakeAuditRepo{}
	bus := events.NewInMemoryBus(zap.NewNop())
	NewAuditService(repo, zap.NewNop()).Register(bus)
	ctx := context.Background()

	now := time.Now()
	bus.PublishAll(ctx, []events.Event{
		events.New(events.EventTicketCreated, "ticket-1", events.TicketCreatedPayload{
			Title:       "printer down",
			Priority:    "HIGH",
			AreaID:      "area-1",
			RequesterID: "user-1",
		}),
		events.New(events.EventTicketStatusChanged, "ticket-1", events.TicketStatusChangedPayload{
			OldStatus:   "OPEN",
			NewStatus:   "IN_PROGRESS",
			ChangedByID: "agent-1",
		}),
	})

	entries := repo.all()
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}

	created := entries[0]
	if created.Action != AuditTicketCreated {
		t.Fatalf("action = %q, want %q", created.Action, AuditTicketCreated)
	}
	if created.ActorID != "user-1" {
		t.Fatalf("actor = %q, want requester", created.ActorID)
	}
	if created.TicketID != "ticket-1" {
		t.Fatalf("ticket = %q", created.TicketID)
	}
	if created.OccurredAt.Before(now.Add(-time.Minute)) {
		t.Fatal("occurred_at not stamped")
	}
	if created.Details["title"] != "printer down" {
		t.Fatalf("details missing payload fields: %v", created.Details)
	}

	changed := entries[1]
	if changed.Action != AuditStatusChanged || changed.ActorID != "agent-1" {
		t.Fatalf("unexpected second entry: %+v", changed)
	}
	if changed.Details["old_status"] != "OPEN" || changed.Details["new_status"] != "IN_PROGRESS" {
		t.Fatalf("transition details = %v", changed.Details)
	}
}

func TestAuditBreachEntriesUseSystemActor(t *testing.T) {
	repo := &fakeAuditRepo{}
	bus := events.NewInMemoryBus(zap.NewNop())
	NewAuditService(repo, zap.NewNop()).Register(bus)

	bus.PublishAll(context.Background(), []events.Event{
		events.New(events.EventSLABreached, "ticket-9", events.SLABreachedPayload{
			BreachType:    events.SLABreachResponse,
			ExpectedTime:  time.Now().Add(-time.Hour),
			ActualTime:    time.Now(),
			BreachMinutes: 60,
		}),
	})

	entries := repo.all()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ActorID != SystemActor {
		t.Fatalf("actor = %q, want %q", entries[0].ActorID, SystemActor)
	}
	if entries[0].Action != AuditSLABreached {
		t.Fatalf("action = %q", entries[0].Action)
	}
}

func TestAuditListByTicketPagination(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		repo.Create(ctx, &domain.AuditTrail{TicketID: "ticket-1", ActorID: "user-1", Action: AuditStatusChanged, OccurredAt: time.Now()})
	}
	repo.Create(ctx, &domain.AuditTrail{TicketID: "other", ActorID: "user-1", Action: AuditTicketCreated, OccurredAt: time.Now()})

	page, err := svc.ListByTicket(ctx, "ticket-1", 3, 0)
	if err != nil {
		t.Fatalf("ListByTicket: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("page size = %d, want 3", len(page))
	}

	rest, err := svc.ListByTicket(ctx, "ticket-1", 3, 3)
	if err != nil {
		t.Fatalf("ListByTicket offset: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("remaining = %d, want 2", len(rest))
	}
}
