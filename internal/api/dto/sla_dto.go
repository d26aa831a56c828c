package dto

import "time"

// CreateSLARequest payload for registering a time budget.
type CreateSLARequest struct {
	AreaID                string `json:"area_id"`
	Priority              string `json:"priority"`
	ResponseTimeMinutes   int    `json:"response_time_minutes"`
	ResolutionTimeMinutes int    `json:"resolution_time_minutes"`
}

// UpdateSLARequest carries optional budget changes.
type UpdateSLARequest struct {
	ResponseTimeMinutes   *int  `json:"response_time_minutes,omitempty"`
	ResolutionTimeMinutes *int  `json:"resolution_time_minutes,omitempty"`
	IsActive              *bool `json:"is_active,omitempty"`
}

// SLAResponse is the wire view of an SLA.
type SLAResponse struct {
	ID                    string    `json:"id"`
	AreaID                string    `json:"area_id"`
	Priority              string    `json:"priority"`
	ResponseTimeMinutes   int       `json:"response_time_minutes"`
	ResolutionTimeMinutes int       `json:"resolution_time_minutes"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
