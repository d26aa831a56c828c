package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers. Subscribe and publish
// sites use these constants, never free-form strings.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketResolved        EventType = "ticket_resolved"
	EventTicketClosed          EventType = "ticket_closed"
	EventTicketReopened        EventType = "ticket_reopened"
	EventSLABreached           EventType = "sla_breached"
)

// Event is an immutable record of something that happened to a ticket.
// Ordering is per-aggregate: the order events were added within a mutation.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	TicketID   string    `json:"ticket_id"`
	OccurredOn time.Time `json:"occurred_on"`
	Payload    any       `json:"payload"`
}

// New captures an event at the current instant.
func New(eventType EventType, ticketID string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		TicketID:   ticketID,
		OccurredOn: time.Now(),
		Payload:    payload,
	}
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	AreaID      string `json:"area_id"`
	RequesterID string `json:"requester_id"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignedToID string `json:"assigned_to_id"`
	AssignedByID string `json:"assigned_by_id"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
	ChangedByID string `json:"changed_by_id"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority string `json:"old_priority"`
	NewPriority string `json:"new_priority"`
	ChangedByID string `json:"changed_by_id"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	ResolvedByID   string    `json:"resolved_by_id"`
	Resolution     string    `json:"resolution"`
	ResolutionTime time.Time `json:"resolution_time"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	ClosedByID  string `json:"closed_by_id"`
	CloseReason string `json:"close_reason,omitempty"`
}

// TicketReopenedPayload payload.
type TicketReopenedPayload struct {
	ReopenedByID string `json:"reopened_by_id"`
}

// SLABreachType distinguishes which SLA budget was exceeded.
type SLABreachType string

const (
	SLABreachResponse   SLABreachType = "response"
	SLABreachResolution SLABreachType = "resolution"
)

// SLABreachedPayload payload.
type SLABreachedPayload struct {
	BreachType    SLABreachType `json:"breach_type"`
	ExpectedTime  time.Time     `json:"expected_time"`
	ActualTime    time.Time     `json:"actual_time"`
	BreachMinutes float64       `json:"breach_minutes"`
}
