package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/api/dto"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/service"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// CommentsHandler manages the comment thread endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// Add POST /tickets/:id/comments.
func (h *CommentsHandler) Add(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.Add(c.UserContext(), c.Params("id"), principal.User.ID, req.Content, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// List GET /tickets/:id/comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	comments, err := h.service.ListForUser(c.UserContext(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, commentResponse(comment))
	}
	return c.JSON(fiber.Map{"data": items})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		UserID:     comment.UserID,
		Content:    comment.Content,
		IsInternal: comment.IsInternal,
		CreatedAt:  comment.CreatedAt,
	}
}
