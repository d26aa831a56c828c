package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/config"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
)

// NotificationService turns ticket events into outbound notifications.
// Email and webhook delivery are stubbed behind configuration; recipients
// are resolved from the ticket's requester and assignee.
type NotificationService struct {
	bus     events.Bus
	tickets repository.TicketRepository
	users   repository.UserRepository
	logger  *zap.Logger
	cfg     config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(bus events.Bus, tickets repository.TicketRepository, users repository.UserRepository, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		bus:     bus,
		tickets: tickets,
		users:   users,
		logger:  logger,
		cfg:     cfg,
	}
}

// RegisterHandlers subscribes to the events worth announcing.
func (n *NotificationService) RegisterHandlers() {
	if n.bus == nil {
		return
	}
	n.bus.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.bus.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.bus.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.bus.Subscribe(events.EventSLABreached, n.handleSLABreached)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.sendEmailNotification(ctx, event, n.recipientEmails(ctx, event.TicketID))
	n.sendWebhookNotification(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketAssigned", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.TicketAssignedPayload); ok {
		n.sendEmailNotification(ctx, event, n.emailsForUsers(ctx, payload.AssignedToID))
	}
	n.sendWebhookNotification(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.sendEmailNotification(ctx, event, n.recipientEmails(ctx, event.TicketID))
	n.sendWebhookNotification(ctx, event)
	return nil
}

func (n *NotificationService) handleSLABreached(ctx context.Context, event events.Event) error {
	n.logger.Warn("SLABreached", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.sendEmailNotification(ctx, event, n.recipientEmails(ctx, event.TicketID))
	n.sendWebhookNotification(ctx, event)
	return nil
}

// recipientEmails resolves the requester and current assignee of a ticket.
func (n *NotificationService) recipientEmails(ctx context.Context, ticketID string) []string {
	ticket, err := n.tickets.GetByID(ctx, ticketID)
	if err != nil {
		n.logger.Debug("notification recipient lookup failed",
			zap.String("ticket_id", ticketID), zap.Error(err))
		return nil
	}
	ids := []string{ticket.RequesterID}
	if ticket.AssignedToID != nil {
		ids = append(ids, *ticket.AssignedToID)
	}
	return n.emailsForUsers(ctx, ids...)
}

func (n *NotificationService) emailsForUsers(ctx context.Context, userIDs ...string) []string {
	var emails []string
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		user, err := n.users.GetByID(ctx, id)
		if err != nil {
			n.logger.Debug("notification user lookup failed",
				zap.String("user_id", id), zap.Error(err))
			continue
		}
		emails = append(emails, user.Email)
	}
	return emails
}

func (n *NotificationService) sendEmailNotification(_ context.Context, event events.Event, recipients []string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || len(recipients) == 0 {
		return
	}
	n.logger.Debug("sendEmailNotification",
		zap.String("from", n.cfg.EmailFrom),
		zap.Strings("to", recipients),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotification(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
