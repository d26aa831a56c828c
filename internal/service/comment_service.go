package service

import (
	"context"
	"strings"
	"time"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// CommentService manages the discussion thread on tickets. Internal notes
// are restricted to staff and hidden from requesters.
type CommentService struct {
	comments repository.CommentRepository
	tickets  repository.TicketRepository
	users    repository.UserRepository
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, tickets repository.TicketRepository, users repository.UserRepository) *CommentService {
	return &CommentService{comments: comments, tickets: tickets, users: users}
}

// Add appends a comment to a ticket.
func (s *CommentService) Add(ctx context.Context, ticketID, userID, content string, isInternal bool) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("comment content required", nil)
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, notFound(err, "ticket")
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if isInternal && !author.IsAgent() && !author.IsAdmin() {
		return nil, apperrors.NewForbidden("only staff can post internal comments")
	}

	now := time.Now()
	comment := &domain.Comment{
		TicketID:   ticketID,
		UserID:     userID,
		Content:    content,
		IsInternal: isInternal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForUser returns the comments on a ticket the given user may see:
// internal notes only for staff.
func (s *CommentService) ListForUser(ctx context.Context, ticketID, userID string) ([]*domain.Comment, error) {
	viewer, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if viewer.IsAgent() || viewer.IsAdmin() {
		return comments, nil
	}

	visible := make([]*domain.Comment, 0, len(comments))
	for _, comment := range comments {
		if !comment.IsInternal {
			visible = append(visible, comment)
		}
	}
	return visible, nil
}
