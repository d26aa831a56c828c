package domain

import (
	"strings"

	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// Priority enumerates SLA urgency.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// ParsePriority converts a case-insensitive string into a Priority.
func ParsePriority(value string) (Priority, error) {
	priority := Priority(strings.ToUpper(strings.TrimSpace(value)))
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return priority, nil
	}
	return "", apperrors.NewInvalidValue("invalid priority: "+value, map[string]any{"value": value})
}

// IsCritical reports the top urgency category.
func (p Priority) IsCritical() bool {
	return p == PriorityCritical
}

// IsHighOrCritical flags the urgent category used for escalation rules.
func (p Priority) IsHighOrCritical() bool {
	return p == PriorityHigh || p == PriorityCritical
}

func (p Priority) String() string {
	return string(p)
}
