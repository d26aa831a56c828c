package domain

import (
	"testing"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

func newTestTicket(t *testing.T) *Ticket {
	t.Helper()
	ticket := NewTicket("printer down", "the third-floor printer jams", PriorityMedium, "area-1", "user-1")
	ticket.SetID("ticket-1")
	ticket.ClearDomainEvents()
	return ticket
}

func TestNewTicketEmitsCreatedEvent(t *testing.T) {
	ticket := NewTicket("printer down", "details", PriorityHigh, "area-1", "user-1")
	if ticket.Status != StatusOpen {
		t.Fatalf("new ticket status = %v, want OPEN", ticket.Status)
	}

	pending := ticket.DomainEvents()
	if len(pending) != 1 {
		t.Fatalf("pending events = %d, want 1", len(pending))
	}
	if pending[0].Type != events.EventTicketCreated {
		t.Fatalf("event type = %v, want %v", pending[0].Type, events.EventTicketCreated)
	}

	// Creation precedes persistence, so the event lacks an ID until SetID.
	if pending[0].TicketID != "" {
		t.Fatalf("pre-persist event carries ticket id %q", pending[0].TicketID)
	}
	ticket.SetID("ticket-9")
	if got := ticket.DomainEvents()[0].TicketID; got != "ticket-9" {
		t.Fatalf("SetID did not backfill event ticket id, got %q", got)
	}
}

func TestAssignStampsResponseTimeOnce(t *testing.T) {
	ticket := newTestTicket(t)

	if err := ticket.AssignTo("agent-1", "admin-1"); err != nil {
		t.Fatalf("AssignTo: %v", err)
	}
	if ticket.ResponseTime == nil {
		t.Fatal("first assignment must stamp ResponseTime")
	}
	first := *ticket.ResponseTime

	if err := ticket.AssignTo("agent-2", "admin-1"); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if !ticket.ResponseTime.Equal(first) {
		t.Fatal("reassignment must not move ResponseTime")
	}
	if *ticket.AssignedToID != "agent-2" {
		t.Fatalf("assignee = %q, want agent-2", *ticket.AssignedToID)
	}
	if got := len(ticket.DomainEvents()); got != 2 {
		t.Fatalf("pending events = %d, want 2", got)
	}
}

func TestChangeStatusRejectsIllegalEdge(t *testing.T) {
	ticket := newTestTicket(t)

	err := ticket.ChangeStatus(StatusPending, "agent-1")
	if !apperrors.IsCode(err, "INVALID_STATUS_TRANSITION") {
		t.Fatalf("OPEN->PENDING: expected INVALID_STATUS_TRANSITION, got %v", err)
	}
	if ticket.Status != StatusOpen {
		t.Fatalf("failed transition mutated status to %v", ticket.Status)
	}
	if len(ticket.DomainEvents()) != 0 {
		t.Fatal("failed transition emitted an event")
	}
}

func TestResolveFromAnyNonClosedState(t *testing.T) {
	ticket := newTestTicket(t)

	// Resolve straight from OPEN, bypassing the transition table.
	if err := ticket.Resolve("replaced toner", "agent-1"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ticket.Status != StatusResolved {
		t.Fatalf("status = %v, want RESOLVED", ticket.Status)
	}
	if ticket.Resolution == nil || *ticket.Resolution != "replaced toner" {
		t.Fatal("resolution text not recorded")
	}
	if ticket.ResolvedAt == nil || ticket.ResolutionTime == nil {
		t.Fatal("resolution markers not stamped")
	}

	if err := ticket.Resolve("again", "agent-1"); err == nil {
		t.Fatal("resolving a resolved ticket must fail")
	}
}

func TestCloseGuards(t *testing.T) {
	ticket := newTestTicket(t)

	if err := ticket.Close("agent-1", "duplicate"); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ticket.Status != StatusClosed || ticket.ClosedAt == nil {
		t.Fatal("close did not stamp CLOSED state")
	}

	if err := ticket.Close("agent-1", ""); !apperrors.IsCode(err, "INVALID_OPERATION") {
		t.Fatalf("double close: expected INVALID_OPERATION, got %v", err)
	}
	if err := ticket.AssignTo("agent-2", "admin-1"); err == nil {
		t.Fatal("assigning a closed ticket must fail")
	}
	if err := ticket.UpdateTitle("new title"); err == nil {
		t.Fatal("editing a closed ticket must fail")
	}
}

func TestReopenClearsResolutionMarkers(t *testing.T) {
	ticket := newTestTicket(t)
	if err := ticket.AssignTo("agent-1", "admin-1"); err != nil {
		t.Fatalf("AssignTo: %v", err)
	}
	if err := ticket.Resolve("fixed", "agent-1"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := ticket.ChangeStatus(StatusClosed, "agent-1"); err != nil {
		t.Fatalf("RESOLVED->CLOSED: %v", err)
	}

	if err := ticket.Reopen("user-1"); err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	if ticket.Status != StatusOpen {
		t.Fatalf("status = %v, want OPEN", ticket.Status)
	}
	if ticket.Resolution != nil || ticket.ResolvedAt != nil || ticket.ResolutionTime != nil || ticket.ClosedAt != nil {
		t.Fatal("reopen must clear all resolution markers together")
	}
	if ticket.ResponseTime == nil {
		t.Fatal("reopen must not clear ResponseTime")
	}

	last := ticket.DomainEvents()[len(ticket.DomainEvents())-1]
	if last.Type != events.EventTicketReopened {
		t.Fatalf("last event = %v, want %v", last.Type, events.EventTicketReopened)
	}

	if err := ticket.Reopen("user-1"); err == nil {
		t.Fatal("reopening an open ticket must fail")
	}
}

func TestChangePriorityNoOpWhenUnchanged(t *testing.T) {
	ticket := newTestTicket(t)

	if err := ticket.ChangePriority(PriorityMedium, "agent-1"); err != nil {
		t.Fatalf("ChangePriority: %v", err)
	}
	if len(ticket.DomainEvents()) != 0 {
		t.Fatal("unchanged priority must not emit an event")
	}

	if err := ticket.ChangePriority(PriorityCritical, "agent-1"); err != nil {
		t.Fatalf("ChangePriority: %v", err)
	}
	pending := ticket.DomainEvents()
	if len(pending) != 1 || pending[0].Type != events.EventTicketPriorityChanged {
		t.Fatalf("expected one priority-changed event, got %v", pending)
	}
}

func TestDomainEventsSnapshotAndClear(t *testing.T) {
	ticket := newTestTicket(t)
	if err := ticket.AssignTo("agent-1", "admin-1"); err != nil {
		t.Fatalf("AssignTo: %v", err)
	}

	snapshot := ticket.DomainEvents()
	if len(snapshot) != 1 {
		t.Fatalf("snapshot length = %d, want 1", len(snapshot))
	}
	// The snapshot is a copy: draining it must not affect the buffer.
	snapshot[0].Type = events.EventTicketClosed
	if ticket.DomainEvents()[0].Type != events.EventTicketAssigned {
		t.Fatal("DomainEvents must return a copy")
	}

	ticket.ClearDomainEvents()
	if len(ticket.DomainEvents()) != 0 {
		t.Fatal("ClearDomainEvents must empty the buffer")
	}
}
