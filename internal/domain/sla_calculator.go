package domain

import "time"

// SLAMetrics reports how a single ticket performed against its SLA. Breach
// overrun fields are nil unless the corresponding deadline was exceeded.
type SLAMetrics struct {
	ResponseTimeMinutes     float64   `json:"response_time_minutes"`
	ResolutionTimeMinutes   float64   `json:"resolution_time_minutes"`
	ResponseDeadline        time.Time `json:"response_deadline"`
	ResolutionDeadline      time.Time `json:"resolution_deadline"`
	IsResponseBreached      bool      `json:"is_response_breached"`
	IsResolutionBreached    bool      `json:"is_resolution_breached"`
	ResponseBreachMinutes   *float64  `json:"response_breach_minutes,omitempty"`
	ResolutionBreachMinutes *float64  `json:"resolution_breach_minutes,omitempty"`
}

// SLACalculator derives deadline and breach arithmetic for tickets.
type SLACalculator struct{}

// NewSLACalculator returns the stateless calculator.
func NewSLACalculator() *SLACalculator {
	return &SLACalculator{}
}

// Metrics computes elapsed minutes, deadlines and breach state for one
// ticket. Elapsed times are zero when the corresponding marker is not yet
// set; overrun minutes are present only when breached.
func (c *SLACalculator) Metrics(ticket *Ticket, sla *SLA) SLAMetrics {
	responseDeadline := sla.ResponseDeadline(ticket.CreatedAt)
	resolutionDeadline := sla.ResolutionDeadline(ticket.CreatedAt)

	now := time.Now()
	responseAt := now
	if ticket.ResponseTime != nil {
		responseAt = *ticket.ResponseTime
	}
	resolutionAt := now
	if ticket.ResolutionTime != nil {
		resolutionAt = *ticket.ResolutionTime
	}

	metrics := SLAMetrics{
		ResponseDeadline:     responseDeadline,
		ResolutionDeadline:   resolutionDeadline,
		IsResponseBreached:   sla.IsResponseBreached(ticket.CreatedAt, ticket.ResponseTime),
		IsResolutionBreached: sla.IsResolutionBreached(ticket.CreatedAt, ticket.ResolutionTime),
	}

	if metrics.IsResponseBreached {
		overrun := responseAt.Sub(responseDeadline).Minutes()
		metrics.ResponseBreachMinutes = &overrun
	}
	if metrics.IsResolutionBreached {
		overrun := resolutionAt.Sub(resolutionDeadline).Minutes()
		metrics.ResolutionBreachMinutes = &overrun
	}

	if ticket.ResponseTime != nil {
		metrics.ResponseTimeMinutes = ticket.ResponseTime.Sub(ticket.CreatedAt).Minutes()
	}
	if ticket.ResolutionTime != nil {
		metrics.ResolutionTimeMinutes = ticket.ResolutionTime.Sub(ticket.CreatedAt).Minutes()
	}

	return metrics
}

// IsTicketOverdue reports whether an open ticket has blown its resolution
// deadline. Closed and resolved tickets are never overdue.
func (c *SLACalculator) IsTicketOverdue(ticket *Ticket, sla *SLA) bool {
	if ticket.Status.IsClosed() {
		return false
	}
	return sla.IsResolutionBreached(ticket.CreatedAt, nil)
}

// RemainingTime returns minutes left until the resolution deadline, clamped
// to zero. Closed tickets have no remaining time.
func (c *SLACalculator) RemainingTime(ticket *Ticket, sla *SLA) float64 {
	if ticket.Status.IsClosed() {
		return 0
	}
	remaining := time.Until(sla.ResolutionDeadline(ticket.CreatedAt)).Minutes()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CompliancePercentage is the share of tickets whose resolution deadline was
// not exceeded, as a percentage. An empty set is fully compliant.
func (c *SLACalculator) CompliancePercentage(tickets []*Ticket, sla *SLA) float64 {
	if len(tickets) == 0 {
		return 100
	}
	compliant := 0
	for _, ticket := range tickets {
		if !sla.IsResolutionBreached(ticket.CreatedAt, ticket.ResolutionTime) {
			compliant++
		}
	}
	return float64(compliant) / float64(len(tickets)) * 100
}
