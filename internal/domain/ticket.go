package domain

import (
	"time"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// Ticket is the central aggregate: the state machine for a support request.
// It owns a transient buffer of pending domain events accumulated during its
// in-memory lifetime; callers drain the buffer after each persisted mutation.
//
// A failing operation leaves the ticket exactly as before the call: every
// guard runs before any field is touched.
type Ticket struct {
	ID           string
	Title        string
	Description  string
	Priority     Priority
	Status       Status
	AreaID       string
	RequesterID  string
	AssignedToID *string
	Resolution   *string
	// ResponseTime is stamped at most once, on first assignment.
	ResponseTime   *time.Time
	ResolutionTime *time.Time
	ResolvedAt     *time.Time
	ClosedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	pendingEvents []events.Event
}

// NewTicket creates an OPEN ticket and records the creation event. Identity
// assignment is deferred to the persistence boundary.
func NewTicket(title, description string, priority Priority, areaID, requesterID string) *Ticket {
	now := time.Now()
	ticket := &Ticket{
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      StatusOpen,
		AreaID:      areaID,
		RequesterID: requesterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ticket.addEvent(events.New(events.EventTicketCreated, ticket.ID, events.TicketCreatedPayload{
		Title:       title,
		Description: description,
		Priority:    priority.String(),
		AreaID:      areaID,
		RequesterID: requesterID,
	}))
	return ticket
}

// AssignTo sets the assignee. The first assignment stamps ResponseTime; it is
// never overwritten by reassignments.
func (t *Ticket) AssignTo(userID, assignedByID string) error {
	if t.Status.IsClosed() {
		return apperrors.NewInvalidOperation("cannot assign a closed ticket")
	}

	t.AssignedToID = &userID
	if t.ResponseTime == nil {
		now := time.Now()
		t.ResponseTime = &now
	}
	t.UpdatedAt = time.Now()

	t.addEvent(events.New(events.EventTicketAssigned, t.ID, events.TicketAssignedPayload{
		AssignedToID: userID,
		AssignedByID: assignedByID,
	}))
	return nil
}

// ChangeStatus moves the ticket along an edge of the status graph.
func (t *Ticket) ChangeStatus(newStatus Status, changedByID string) error {
	if !t.Status.CanTransitionTo(newStatus) {
		return apperrors.NewInvalidTransition(t.Status.String(), newStatus.String())
	}

	oldStatus := t.Status
	t.Status = newStatus
	if newStatus == StatusClosed {
		now := time.Now()
		t.ClosedAt = &now
	}
	t.UpdatedAt = time.Now()

	t.addEvent(events.New(events.EventTicketStatusChanged, t.ID, events.TicketStatusChangedPayload{
		OldStatus:   oldStatus.String(),
		NewStatus:   newStatus.String(),
		ChangedByID: changedByID,
	}))
	return nil
}

// ChangePriority mutates the priority. An unchanged priority is a no-op:
// no mutation, no event.
func (t *Ticket) ChangePriority(newPriority Priority, changedByID string) error {
	if t.Priority == newPriority {
		return nil
	}

	oldPriority := t.Priority
	t.Priority = newPriority
	t.UpdatedAt = time.Now()

	t.addEvent(events.New(events.EventTicketPriorityChanged, t.ID, events.TicketPriorityChangedPayload{
		OldPriority: oldPriority.String(),
		NewPriority: newPriority.String(),
		ChangedByID: changedByID,
	}))
	return nil
}

// Resolve records the resolution and moves the ticket to RESOLVED. Resolution
// is permitted from any non-closed state; it does not consult the transition
// table.
func (t *Ticket) Resolve(resolution, resolvedByID string) error {
	if t.Status.IsClosed() {
		return apperrors.NewInvalidOperation("cannot resolve a closed ticket")
	}

	now := time.Now()
	t.Resolution = &resolution
	t.ResolvedAt = &now
	t.ResolutionTime = &now
	t.Status = StatusResolved
	t.UpdatedAt = now

	t.addEvent(events.New(events.EventTicketResolved, t.ID, events.TicketResolvedPayload{
		ResolvedByID:   resolvedByID,
		Resolution:     resolution,
		ResolutionTime: now,
	}))
	return nil
}

// Close stamps ClosedAt and moves the ticket to CLOSED. Resolved tickets
// count as closed here; they reach CLOSED via the RESOLVED→CLOSED edge of
// ChangeStatus instead.
func (t *Ticket) Close(closedByID, closeReason string) error {
	if t.Status.IsClosed() {
		return apperrors.NewInvalidOperation("ticket is already closed")
	}

	now := time.Now()
	t.ClosedAt = &now
	t.Status = StatusClosed
	t.UpdatedAt = now

	t.addEvent(events.New(events.EventTicketClosed, t.ID, events.TicketClosedPayload{
		ClosedByID:  closedByID,
		CloseReason: closeReason,
	}))
	return nil
}

// Reopen returns a closed or resolved ticket to OPEN, clearing the
// resolution markers together. ResponseTime survives: the first response
// already happened.
func (t *Ticket) Reopen(reopenedByID string) error {
	if !t.Status.IsClosed() {
		return apperrors.NewInvalidOperation("can only reopen closed tickets")
	}

	t.Status = StatusOpen
	t.ResolvedAt = nil
	t.ClosedAt = nil
	t.Resolution = nil
	t.ResolutionTime = nil
	t.UpdatedAt = time.Now()

	t.addEvent(events.New(events.EventTicketReopened, t.ID, events.TicketReopenedPayload{
		ReopenedByID: reopenedByID,
	}))
	return nil
}

// UpdateTitle changes the title of a ticket that is still open for edits.
func (t *Ticket) UpdateTitle(title string) error {
	if t.Status.IsClosed() {
		return apperrors.NewInvalidOperation("cannot update a closed ticket")
	}
	t.Title = title
	t.UpdatedAt = time.Now()
	return nil
}

// UpdateDescription changes the description of an editable ticket.
func (t *Ticket) UpdateDescription(description string) error {
	if t.Status.IsClosed() {
		return apperrors.NewInvalidOperation("cannot update a closed ticket")
	}
	t.Description = description
	t.UpdatedAt = time.Now()
	return nil
}

// IsOverdue reports whether an open ticket has outlived the given SLA budget.
// Closed tickets are never overdue.
func (t *Ticket) IsOverdue(slaMinutes int) bool {
	if t.Status.IsClosed() {
		return false
	}
	return time.Since(t.CreatedAt).Minutes() > float64(slaMinutes)
}

func (t *Ticket) addEvent(event events.Event) {
	if event.TicketID == "" {
		event.TicketID = t.ID
	}
	t.pendingEvents = append(t.pendingEvents, event)
}

// DomainEvents returns a non-destructive snapshot of the pending buffer.
// Events carry the ticket ID known at emission time; SetID backfills it for
// events emitted before the persistence boundary assigned one.
func (t *Ticket) DomainEvents() []events.Event {
	snapshot := make([]events.Event, len(t.pendingEvents))
	copy(snapshot, t.pendingEvents)
	return snapshot
}

// ClearDomainEvents empties the buffer. Callers must clear after dispatch or
// events double-fire on the next drain.
func (t *Ticket) ClearDomainEvents() {
	t.pendingEvents = nil
}

// SetID assigns the repository-issued identifier and stamps it onto any
// events emitted before the ticket was persisted.
func (t *Ticket) SetID(id string) {
	t.ID = id
	for i := range t.pendingEvents {
		if t.pendingEvents[i].TicketID == "" {
			t.pendingEvents[i].TicketID = id
		}
	}
}
