package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
)

// Audit actions recorded against tickets, one per event type.
const (
	AuditTicketCreated   = "TICKET_CREATED"
	AuditTicketAssigned  = "TICKET_ASSIGNED"
	AuditStatusChanged   = "STATUS_CHANGED"
	AuditPriorityChanged = "PRIORITY_CHANGED"
	AuditTicketResolved  = "TICKET_RESOLVED"
	AuditTicketClosed    = "TICKET_CLOSED"
	AuditTicketReopened  = "TICKET_REOPENED"
	AuditSLABreached     = "SLA_BREACHED"
)

// SystemActor is recorded when no user caused the change, such as an SLA
// breach detected by the background sweep.
const SystemActor = "system"

// AuditService records and exposes the per-ticket audit log.
type AuditService struct {
	entries repository.AuditTrailRepository
	logger  *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(entries repository.AuditTrailRepository, logger *zap.Logger) *AuditService {
	return &AuditService{entries: entries, logger: logger}
}

// ListByTicket returns the audit entries for a ticket, newest first.
func (s *AuditService) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]*domain.AuditTrail, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.entries.ListByTicket(ctx, ticketID, limit, offset)
}

// Register subscribes the audit handler to every ticket event type on the bus.
func (s *AuditService) Register(bus events.Bus) {
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketAssigned,
		events.EventTicketStatusChanged,
		events.EventTicketPriorityChanged,
		events.EventTicketResolved,
		events.EventTicketClosed,
		events.EventTicketReopened,
		events.EventSLABreached,
	} {
		bus.Subscribe(eventType, s.record)
	}
}

func (s *AuditService) record(ctx context.Context, event events.Event) error {
	entry := &domain.AuditTrail{
		TicketID:   event.TicketID,
		ActorID:    actorFor(event),
		Action:     actionFor(event.Type),
		Details:    payloadDetails(event.Payload),
		OccurredAt: event.OccurredOn,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		s.logger.Error("failed to write audit entry",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
		return err
	}
	return nil
}

func actionFor(eventType events.EventType) string {
	switch eventType {
	case events.EventTicketCreated:
		return AuditTicketCreated
	case events.EventTicketAssigned:
		return AuditTicketAssigned
	case events.EventTicketStatusChanged:
		return AuditStatusChanged
	case events.EventTicketPriorityChanged:
		return AuditPriorityChanged
	case events.EventTicketResolved:
		return AuditTicketResolved
	case events.EventTicketClosed:
		return AuditTicketClosed
	case events.EventTicketReopened:
		return AuditTicketReopened
	case events.EventSLABreached:
		return AuditSLABreached
	default:
		return string(eventType)
	}
}

func actorFor(event events.Event) string {
	switch payload := event.Payload.(type) {
	case events.TicketCreatedPayload:
		return payload.RequesterID
	case events.TicketAssignedPayload:
		return payload.AssignedByID
	case events.TicketStatusChangedPayload:
		return payload.ChangedByID
	case events.TicketPriorityChangedPayload:
		return payload.ChangedByID
	case events.TicketResolvedPayload:
		return payload.ResolvedByID
	case events.TicketClosedPayload:
		return payload.ClosedByID
	case events.TicketReopenedPayload:
		return payload.ReopenedByID
	default:
		return SystemActor
	}
}

// payloadDetails flattens a typed payload into the audit entry's details map
// by round-tripping through JSON.
func payloadDetails(payload any) map[string]any {
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	var details map[string]any
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil
	}
	return details
}
