package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

type slaFixture struct {
	service  *SLAService
	slas     *fakeSLARepo
	tickets  *fakeTicketRepo
	recorder *eventRecorder
}

// Cache is nil throughout: the service must degrade to repository lookups
// without Redis.
func newSLAFixture(t *testing.T) *slaFixture {
	t.Helper()

	areas := newFakeAreaRepo(&domain.Area{ID: "area-1", Name: "IT", IsActive: true})
	slas := newFakeSLARepo()
	tickets := newFakeTicketRepo()

	bus := events.NewInMemoryBus(zap.NewNop())
	recorder := &eventRecorder{}
	bus.Subscribe(events.EventSLABreached, recorder.handle)

	svc := NewSLAService(SLADependencies{
		SLARepo:    slas,
		TicketRepo: tickets,
		AreaRepo:   areas,
		Bus:        bus,
		Logger:     zap.NewNop(),
	})
	return &slaFixture{service: svc, slas: slas, tickets: tickets, recorder: recorder}
}

func (f *slaFixture) seedSLA(t *testing.T, response, resolution int) *domain.SLA {
	t.Helper()
	sla, err := f.service.Create(context.Background(), SLACreateInput{
		AreaID:                "area-1",
		Priority:              "HIGH",
		ResponseTimeMinutes:   response,
		ResolutionTimeMinutes: resolution,
	})
	if err != nil {
		t.Fatalf("Create SLA: %v", err)
	}
	return sla
}

func (f *slaFixture) seedTicket(t *testing.T, age time.Duration) *domain.Ticket {
	t.Helper()
	ticket := domain.NewTicket("outage", "details", domain.PriorityHigh, "area-1", "user-1")
	ticket.ClearDomainEvents()
	ticket.CreatedAt = time.Now().Add(-age)
	if err := f.tickets.Create(context.Background(), ticket); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return ticket
}

func TestSLACreateRejectsInvertedBudgets(t *testing.T) {
	f := newSLAFixture(t)

	_, err := f.service.Create(context.Background(), SLACreateInput{
		AreaID:                "area-1",
		Priority:              "HIGH",
		ResponseTimeMinutes:   30,
		ResolutionTimeMinutes: 30,
	})
	if !apperrors.IsCode(err, "INVARIANT_VIOLATION") {
		t.Fatalf("expected INVARIANT_VIOLATION, got %v", err)
	}

	if _, err := f.service.Create(context.Background(), SLACreateInput{
		AreaID:                "area-1",
		Priority:              "HIGH",
		ResponseTimeMinutes:   30,
		ResolutionTimeMinutes: 31,
	}); err != nil {
		t.Fatalf("31-minute resolution against 30-minute response: %v", err)
	}
}

func TestCheckBreachesPublishesBothBreachTypes(t *testing.T) {
	f := newSLAFixture(t)
	f.seedSLA(t, 30, 60)
	ticket := f.seedTicket(t, 2*time.Hour)

	if err := f.service.CheckBreaches(context.Background()); err != nil {
		t.Fatalf("CheckBreaches: %v", err)
	}

	seen := map[events.SLABreachType]bool{}
	for _, event := range f.recorder.seen {
		payload, ok := event.Payload.(events.SLABreachedPayload)
		if !ok {
			t.Fatalf("unexpected payload %T", event.Payload)
		}
		if event.TicketID != ticket.ID {
			t.Fatalf("breach for ticket %q, want %q", event.TicketID, ticket.ID)
		}
		if payload.BreachMinutes <= 0 {
			t.Fatalf("breach minutes = %v, want > 0", payload.BreachMinutes)
		}
		seen[payload.BreachType] = true
	}
	if !seen[events.SLABreachResponse] || !seen[events.SLABreachResolution] {
		t.Fatalf("expected response and resolution breaches, got %v", seen)
	}
}

func TestCheckBreachesSkipsRespondedAndHealthyTickets(t *testing.T) {
	f := newSLAFixture(t)
	f.seedSLA(t, 30, 60)

	// Responded in time, still within the resolution budget.
	ticket := f.seedTicket(t, 20*time.Minute)
	responseAt := ticket.CreatedAt.Add(10 * time.Minute)
	ticket.ResponseTime = &responseAt
	if err := f.tickets.Update(context.Background(), ticket); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := f.service.CheckBreaches(context.Background()); err != nil {
		t.Fatalf("CheckBreaches: %v", err)
	}
	if len(f.recorder.seen) != 0 {
		t.Fatalf("healthy ticket produced breaches: %v", f.recorder.types())
	}
}

func TestCheckBreachesToleratesMissingSLA(t *testing.T) {
	f := newSLAFixture(t)
	f.seedTicket(t, 3*time.Hour)

	// No SLA configured for the pair: sweep continues without error.
	if err := f.service.CheckBreaches(context.Background()); err != nil {
		t.Fatalf("CheckBreaches: %v", err)
	}
	if len(f.recorder.seen) != 0 {
		t.Fatal("no SLA means nothing to breach")
	}
}

func TestTicketMetricsAndRemainingTime(t *testing.T) {
	f := newSLAFixture(t)
	f.seedSLA(t, 30, 60)
	ticket := f.seedTicket(t, 10*time.Minute)

	metrics, err := f.service.TicketMetrics(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("TicketMetrics: %v", err)
	}
	if metrics.IsResolutionBreached {
		t.Fatal("ten-minute-old ticket must not breach a 60m budget")
	}

	remaining, err := f.service.RemainingTime(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("RemainingTime: %v", err)
	}
	if remaining <= 49 || remaining > 50 {
		t.Fatalf("remaining = %v, want just under 50", remaining)
	}
}

func TestComplianceUsesResolvedTickets(t *testing.T) {
	f := newSLAFixture(t)
	f.seedSLA(t, 30, 60)

	within := f.seedTicket(t, 3*time.Hour)
	resolvedAt := within.CreatedAt.Add(45 * time.Minute)
	within.ResolutionTime = &resolvedAt
	if err := f.tickets.Update(context.Background(), within); err != nil {
		t.Fatalf("Update: %v", err)
	}

	late := f.seedTicket(t, 3*time.Hour)
	lateAt := late.CreatedAt.Add(2 * time.Hour)
	late.ResolutionTime = &lateAt
	if err := f.tickets.Update(context.Background(), late); err != nil {
		t.Fatalf("Update: %v", err)
	}

	percentage, err := f.service.Compliance(context.Background(), "area-1", "HIGH")
	if err != nil {
		t.Fatalf("Compliance: %v", err)
	}
	if percentage != 50 {
		t.Fatalf("compliance = %v, want 50", percentage)
	}
}

func TestSLAUpdateTogglesActivation(t *testing.T) {
	f := newSLAFixture(t)
	sla := f.seedSLA(t, 30, 60)

	inactive := false
	updated, err := f.service.Update(context.Background(), sla.ID, SLAUpdateInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsActive {
		t.Fatal("deactivation did not stick")
	}

	// Deactivated SLAs no longer resolve for breach checks.
	f.seedTicket(t, 3*time.Hour)
	if err := f.service.CheckBreaches(context.Background()); err != nil {
		t.Fatalf("CheckBreaches: %v", err)
	}
	if len(f.recorder.seen) != 0 {
		t.Fatal("inactive SLA must not be enforced")
	}
}
