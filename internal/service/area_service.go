package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// AreaService administers the organizational units that own tickets.
type AreaService struct {
	areas repository.AreaRepository
}

// NewAreaService constructs the service.
func NewAreaService(areas repository.AreaRepository) *AreaService {
	return &AreaService{areas: areas}
}

// AreaInput describes area creation and update payloads.
type AreaInput struct {
	Name        string
	Description *string
	IsActive    *bool
}

// Create registers a new active area with a unique name.
func (s *AreaService) Create(ctx context.Context, input AreaInput) (*domain.Area, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("area name required", nil)
	}
	if existing, err := s.areas.GetByName(ctx, name); err == nil && existing != nil {
		return nil, apperrors.NewConflict("area name already exists", map[string]any{"name": name})
	}

	now := time.Now()
	area := &domain.Area{
		Name:        name,
		Description: input.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.areas.Create(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

// Update edits name, description or the active flag.
func (s *AreaService) Update(ctx context.Context, id string, input AreaInput) (*domain.Area, error) {
	area, err := s.areas.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "area")
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		area.Name = name
	}
	if input.Description != nil {
		area.Description = input.Description
	}
	if input.IsActive != nil {
		area.IsActive = *input.IsActive
	}
	area.UpdatedAt = time.Now()

	if err := s.areas.Update(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

// Get fetches a single area.
func (s *AreaService) Get(ctx context.Context, id string) (*domain.Area, error) {
	area, err := s.areas.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "area")
	}
	return area, nil
}

// List returns every area.
func (s *AreaService) List(ctx context.Context) ([]*domain.Area, error) {
	return s.areas.ListAll(ctx)
}

// Delete removes an area permanently.
func (s *AreaService) Delete(ctx context.Context, id string) error {
	if err := s.areas.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("area", nil)
		}
		return err
	}
	return nil
}
