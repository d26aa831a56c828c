package dto

import "time"

// CreateTicketRequest payload for opening a ticket.
type CreateTicketRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Priority     string  `json:"priority"`
	AreaID       string  `json:"area_id"`
	AssignedToID *string `json:"assigned_to_id,omitempty"`
}

// UpdateTicketRequest carries optional content edits.
type UpdateTicketRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AssignTicketRequest payload for handing a ticket to a user.
type AssignTicketRequest struct {
	AssignedToID string `json:"assigned_to_id"`
	Comment      string `json:"comment,omitempty"`
}

// ChangeStatusRequest payload for a status transition.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ChangePriorityRequest payload for a priority change.
type ChangePriorityRequest struct {
	Priority string `json:"priority"`
}

// ResolveTicketRequest payload for resolving a ticket.
type ResolveTicketRequest struct {
	Resolution string `json:"resolution"`
}

// CloseTicketRequest payload for closing a ticket.
type CloseTicketRequest struct {
	Reason string `json:"reason,omitempty"`
}

// TicketResponse is the wire view of a ticket.
type TicketResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	AreaID       string     `json:"area_id"`
	RequesterID  string     `json:"requester_id"`
	AssignedToID *string    `json:"assigned_to_id,omitempty"`
	Resolution   *string    `json:"resolution,omitempty"`
	ResponseTime *time.Time `json:"response_time,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
