package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/api/dto"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/service"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// SLAsHandler manages SLA administration and metrics endpoints.
type SLAsHandler struct {
	service *service.SLAService
}

// NewSLAsHandler constructs handler.
func NewSLAsHandler(slaService *service.SLAService) *SLAsHandler {
	return &SLAsHandler{service: slaService}
}

// Create POST /slas.
func (h *SLAsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSLARequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AreaID == "" || req.Priority == "" {
		return apperrors.NewValidationError("area_id and priority required", nil)
	}
	sla, err := h.service.Create(c.UserContext(), service.SLACreateInput{
		AreaID:                req.AreaID,
		Priority:              req.Priority,
		ResponseTimeMinutes:   req.ResponseTimeMinutes,
		ResolutionTimeMinutes: req.ResolutionTimeMinutes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": slaResponse(sla)})
}

// List GET /slas. An area_id query narrows the listing.
func (h *SLAsHandler) List(c *fiber.Ctx) error {
	var (
		slas []*domain.SLA
		err  error
	)
	if areaID := c.Query("area_id"); areaID != "" {
		slas, err = h.service.ListByArea(c.UserContext(), areaID)
	} else {
		slas, err = h.service.ListAll(c.UserContext())
	}
	if err != nil {
		return err
	}
	items := make([]dto.SLAResponse, 0, len(slas))
	for _, sla := range slas {
		items = append(items, slaResponse(sla))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /slas/:id.
func (h *SLAsHandler) Get(c *fiber.Ctx) error {
	sla, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": slaResponse(sla)})
}

// Update PATCH /slas/:id.
func (h *SLAsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateSLARequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sla, err := h.service.Update(c.UserContext(), c.Params("id"), service.SLAUpdateInput{
		ResponseTimeMinutes:   req.ResponseTimeMinutes,
		ResolutionTimeMinutes: req.ResolutionTimeMinutes,
		IsActive:              req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": slaResponse(sla)})
}

// Delete DELETE /slas/:id.
func (h *SLAsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// TicketMetrics GET /tickets/:id/sla.
func (h *SLAsHandler) TicketMetrics(c *fiber.Ctx) error {
	metrics, err := h.service.TicketMetrics(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	remaining, err := h.service.RemainingTime(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"metrics":           metrics,
		"remaining_minutes": remaining,
	}})
}

// Compliance GET /areas/:id/sla-compliance.
func (h *SLAsHandler) Compliance(c *fiber.Ctx) error {
	priority := c.Query("priority")
	if priority == "" {
		return apperrors.NewValidationError("priority query parameter required", nil)
	}
	percentage, err := h.service.Compliance(c.UserContext(), c.Params("id"), priority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"area_id":               c.Params("id"),
		"priority":              priority,
		"compliance_percentage": percentage,
	}})
}

func slaResponse(sla *domain.SLA) dto.SLAResponse {
	return dto.SLAResponse{
		ID:                    sla.ID,
		AreaID:                sla.AreaID,
		Priority:              sla.Priority.String(),
		ResponseTimeMinutes:   sla.ResponseTimeMinutes,
		ResolutionTimeMinutes: sla.ResolutionTimeMinutes,
		IsActive:              sla.IsActive,
		CreatedAt:             sla.CreatedAt,
		UpdatedAt:             sla.UpdatedAt,
	}
}
