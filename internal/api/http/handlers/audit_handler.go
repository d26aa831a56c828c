package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/api/dto"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/service"
)

// AuditHandler exposes the per-ticket audit log.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{service: auditService}
}

// List GET /tickets/:id/audit.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit := parseInt(c.Query("limit"), 50)
	page := parseInt(c.Query("page"), 1)
	entries, err := h.service.ListByTicket(c.UserContext(), c.Params("id"), limit, (page-1)*limit)
	if err != nil {
		return err
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditEntryResponse{
			ID:         entry.ID,
			TicketID:   entry.TicketID,
			ActorID:    entry.ActorID,
			Action:     entry.Action,
			Details:    entry.Details,
			OccurredAt: entry.OccurredAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
