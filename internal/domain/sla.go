package domain

import (
	"time"

	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// SLA is the time budget for one (area, priority) pair. Resolution budget is
// strictly greater than the response budget; construction and both update
// paths enforce it.
type SLA struct {
	ID                    string
	AreaID                string
	Priority              Priority
	ResponseTimeMinutes   int
	ResolutionTimeMinutes int
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewSLA validates budgets and returns an active SLA.
func NewSLA(areaID string, priority Priority, responseMinutes, resolutionMinutes int) (*SLA, error) {
	if err := validateBudgets(responseMinutes, resolutionMinutes); err != nil {
		return nil, err
	}
	now := time.Now()
	return &SLA{
		AreaID:                areaID,
		Priority:              priority,
		ResponseTimeMinutes:   responseMinutes,
		ResolutionTimeMinutes: resolutionMinutes,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

func validateBudgets(responseMinutes, resolutionMinutes int) error {
	if responseMinutes <= 0 {
		return apperrors.NewInvariantViolation("response time must be greater than 0")
	}
	if resolutionMinutes <= 0 {
		return apperrors.NewInvariantViolation("resolution time must be greater than 0")
	}
	if resolutionMinutes <= responseMinutes {
		return apperrors.NewInvariantViolation("resolution time must be greater than response time")
	}
	return nil
}

// ResponseDeadline is createdAt plus the response budget. Deadlines are
// relative offsets: minute granularity, no timezone adjustment.
func (s *SLA) ResponseDeadline(ticketCreatedAt time.Time) time.Time {
	return ticketCreatedAt.Add(time.Duration(s.ResponseTimeMinutes) * time.Minute)
}

// ResolutionDeadline is createdAt plus the resolution budget.
func (s *SLA) ResolutionDeadline(ticketCreatedAt time.Time) time.Time {
	return ticketCreatedAt.Add(time.Duration(s.ResolutionTimeMinutes) * time.Minute)
}

// IsResponseBreached compares the actual response time, or now when the
// ticket has not been responded to yet, against the response deadline.
func (s *SLA) IsResponseBreached(ticketCreatedAt time.Time, responseTime *time.Time) bool {
	checkTime := time.Now()
	if responseTime != nil {
		checkTime = *responseTime
	}
	return checkTime.After(s.ResponseDeadline(ticketCreatedAt))
}

// IsResolutionBreached compares the actual resolution time, or now, against
// the resolution deadline.
func (s *SLA) IsResolutionBreached(ticketCreatedAt time.Time, resolutionTime *time.Time) bool {
	checkTime := time.Now()
	if resolutionTime != nil {
		checkTime = *resolutionTime
	}
	return checkTime.After(s.ResolutionDeadline(ticketCreatedAt))
}

// UpdateBudgets changes both budgets atomically, validating the pair before
// either field moves.
func (s *SLA) UpdateBudgets(responseMinutes, resolutionMinutes int) error {
	if err := validateBudgets(responseMinutes, resolutionMinutes); err != nil {
		return err
	}
	s.ResponseTimeMinutes = responseMinutes
	s.ResolutionTimeMinutes = resolutionMinutes
	s.UpdatedAt = time.Now()
	return nil
}

// UpdateResponseTime changes the response budget, revalidating the
// response < resolution invariant.
func (s *SLA) UpdateResponseTime(minutes int) error {
	if err := validateBudgets(minutes, s.ResolutionTimeMinutes); err != nil {
		return err
	}
	s.ResponseTimeMinutes = minutes
	s.UpdatedAt = time.Now()
	return nil
}

// UpdateResolutionTime changes the resolution budget, revalidating the
// response < resolution invariant.
func (s *SLA) UpdateResolutionTime(minutes int) error {
	if err := validateBudgets(s.ResponseTimeMinutes, minutes); err != nil {
		return err
	}
	s.ResolutionTimeMinutes = minutes
	s.UpdatedAt = time.Now()
	return nil
}

// ResponseTimeHours converts the response budget for reporting.
func (s *SLA) ResponseTimeHours() float64 {
	return float64(s.ResponseTimeMinutes) / 60
}

// ResolutionTimeHours converts the resolution budget for reporting.
func (s *SLA) ResolutionTimeHours() float64 {
	return float64(s.ResolutionTimeMinutes) / 60
}

// Activate marks the SLA as the one in force.
func (s *SLA) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
}

// Deactivate takes the SLA out of force without deleting it.
func (s *SLA) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}
