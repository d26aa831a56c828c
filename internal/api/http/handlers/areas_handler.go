package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/api/dto"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/service"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// AreasHandler manages area administration endpoints.
type AreasHandler struct {
	service *service.AreaService
}

// NewAreasHandler constructs handler.
func NewAreasHandler(areaService *service.AreaService) *AreasHandler {
	return &AreasHandler{service: areaService}
}

// Create POST /areas.
func (h *AreasHandler) Create(c *fiber.Ctx) error {
	var req dto.AreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.Create(c.UserContext(), service.AreaInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": areaResponse(area)})
}

// List GET /areas.
func (h *AreasHandler) List(c *fiber.Ctx) error {
	areas, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AreaResponse, 0, len(areas))
	for _, area := range areas {
		items = append(items, areaResponse(area))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /areas/:id.
func (h *AreasHandler) Get(c *fiber.Ctx) error {
	area, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": areaResponse(area)})
}

// Update PATCH /areas/:id.
func (h *AreasHandler) Update(c *fiber.Ctx) error {
	var req dto.AreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.Update(c.UserContext(), c.Params("id"), service.AreaInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": areaResponse(area)})
}

// Delete DELETE /areas/:id.
func (h *AreasHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func areaResponse(area *domain.Area) dto.AreaResponse {
	return dto.AreaResponse{
		ID:          area.ID,
		Name:        area.Name,
		Description: area.Description,
		IsActive:    area.IsActive,
		CreatedAt:   area.CreatedAt,
		UpdatedAt:   area.UpdatedAt,
	}
}
