package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// TicketService coordinates ticket workflows: every mutation loads the
// aggregate, applies the operation, persists, then drains and publishes the
// accumulated domain events.
type TicketService struct {
	tickets  repository.TicketRepository
	users    repository.UserRepository
	areas    repository.AreaRepository
	comments repository.CommentRepository
	bus      events.Bus
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	UserRepo    repository.UserRepository
	AreaRepo    repository.AreaRepository
	CommentRepo repository.CommentRepository
	Bus         events.Bus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:  deps.TicketRepo,
		users:    deps.UserRepo,
		areas:    deps.AreaRepo,
		comments: deps.CommentRepo,
		bus:      deps.Bus,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title        string
	Description  string
	Priority     string
	AreaID       string
	RequesterID  string
	AssignedToID *string
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Statuses     []domain.Status
	Priorities   []domain.Priority
	AreaID       *string
	RequesterID  *string
	AssignedToID *string
	SearchTerm   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// TicketUpdateInput carries optional content edits.
type TicketUpdateInput struct {
	Title       *string
	Description *string
}

// Create opens a new ticket in the requester's name.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	area, err := s.areas.GetByID(ctx, input.AreaID)
	if err != nil {
		return nil, notFound(err, "area")
	}
	if !area.IsActive {
		return nil, apperrors.NewInvalidOperation("area is inactive")
	}

	ticket := domain.NewTicket(
		strings.TrimSpace(input.Title),
		strings.TrimSpace(input.Description),
		priority,
		input.AreaID,
		input.RequesterID,
	)
	// Direct assignment at creation does not count as a first response.
	ticket.AssignedToID = input.AssignedToID

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishAndClear(ctx, ticket)
	return ticket, nil
}

// Get fetches a single ticket.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	return ticket, nil
}

// List returns tickets matching the filter.
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]*domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses:     filter.Statuses,
		Priorities:   filter.Priorities,
		AreaID:       filter.AreaID,
		RequesterID:  filter.RequesterID,
		AssignedToID: filter.AssignedToID,
		SearchTerm:   filter.SearchTerm,
		CreatedFrom:  filter.CreatedFrom,
		CreatedTo:    filter.CreatedTo,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	})
}

// Assign hands the ticket to a user who can resolve tickets and records an
// internal comment distinguishing assignment from reassignment.
func (s *TicketService) Assign(ctx context.Context, ticketID, assignToID, assignedByID string, comment string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}

	assignee, err := s.users.GetByID(ctx, assignToID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if !assignee.CanResolveTickets() {
		return nil, apperrors.NewInvalidOperation("user cannot be assigned tickets")
	}

	previousAssigneeID := ticket.AssignedToID

	if err := ticket.AssignTo(assignToID, assignedByID); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.recordAssignmentComment(ctx, ticket, assignee, previousAssigneeID, assignedByID, comment)
	s.publishAndClear(ctx, ticket)
	return ticket, nil
}

// ChangeStatus moves the ticket along the status graph.
func (s *TicketService) ChangeStatus(ctx context.Context, ticketID, newStatus, changedByID string) (*domain.Ticket, error) {
	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	if err := ticket.ChangeStatus(status, changedByID); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishAndClear(ctx, ticket)
	return ticket, nil
}

// ChangePriority changes urgency; an unchanged priority is a no-op.
func (s *TicketService) ChangePriority(ctx context.Context, ticketID, newPriority, changedByID string) (*domain.Ticket, error) {
	priority, err := domain.ParsePriority(newPriority)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	if err := ticket.ChangePriority(priority, changedByID); err != nil {
		return nil, err
	}
	if len(ticket.DomainEvents()) == 0 {
		return ticket, nil
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishAndClear(ctx, ticket)
	return ticket, nil
}

// Resolve records the resolution text and marks the ticket RESOLVED.
func (s *TicketService) Resolve(ctx context.Context, ticketID, resolution, resolvedByID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	if err := ticket.Resolve(strings.TrimSpace(resolution), resolvedByID); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishAndClear(ctx, ticket)
	return ticket, nil
}

// Close stamps the closing time and marks the ticket CLOSED.
func (s *TicketService) Close(ctx context.Context, ticketID, closedByID, closeReason string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	if err := ticket.Close(closedByID, closeReason); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishAndClear(ctx, ticket)
	return ticket, nil
}

// Reopen returns a closed ticket to OPEN.
func (s *TicketService) Reopen(ctx context.Context, ticketID, reopenedByID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	if err := ticket.Reopen(reopenedByID); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishAndClear(ctx, ticket)
	return ticket, nil
}

// UpdateDetails edits title and description of an open ticket.
func (s *TicketService) UpdateDetails(ctx context.Context, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	if input.Title != nil {
		if err := ticket.UpdateTitle(strings.TrimSpace(*input.Title)); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := ticket.UpdateDescription(strings.TrimSpace(*input.Description)); err != nil {
			return nil, err
		}
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Delete removes a ticket permanently.
func (s *TicketService) Delete(ctx context.Context, ticketID string) error {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return notFound(err, "ticket")
	}
	return nil
}

func (s *TicketService) recordAssignmentComment(ctx context.Context, ticket *domain.Ticket, assignee *domain.User, previousAssigneeID *string, assignedByID, comment string) {
	assignedBy, err := s.users.GetByID(ctx, assignedByID)
	assignedByName := "System"
	if err == nil {
		assignedByName = assignedBy.Name
	}

	isReassignment := previousAssigneeID != nil && *previousAssigneeID != assignee.ID
	var content string
	if isReassignment {
		content = fmt.Sprintf("Ticket reassigned from %s to %s by %s", *previousAssigneeID, assignee.Name, assignedByName)
	} else {
		content = fmt.Sprintf("Ticket assigned to %s by %s", assignee.Name, assignedByName)
	}
	if comment != "" {
		content += "\n\nComment: " + comment
	}

	now := time.Now()
	_ = s.comments.Create(ctx, &domain.Comment{
		TicketID:   ticket.ID,
		UserID:     assignedByID,
		Content:    content,
		IsInternal: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// publishAndClear drains the aggregate's pending events into the bus. The
// mutation is already durably applied; dispatch failures never roll it back.
func (s *TicketService) publishAndClear(ctx context.Context, ticket *domain.Ticket) {
	pending := ticket.DomainEvents()
	if len(pending) == 0 {
		return
	}
	s.bus.PublishAll(ctx, pending)
	ticket.ClearDomainEvents()
}

func notFound(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
