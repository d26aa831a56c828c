package domain

import (
	"strings"

	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// Status enumerates ticket lifecycle states.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPending    Status = "PENDING"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
)

// statusTransitions is the single source of truth for transition legality.
// No other component may special-case status logic.
var statusTransitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusPending, StatusResolved, StatusClosed},
	StatusPending:    {StatusInProgress, StatusClosed},
	StatusResolved:   {StatusClosed, StatusOpen},
	StatusClosed:     {StatusOpen},
}

// ParseStatus converts a case-insensitive string into a Status.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusOpen, StatusInProgress, StatusPending, StatusResolved, StatusClosed:
		return status, nil
	}
	return "", apperrors.NewInvalidValue("invalid status: "+value, map[string]any{"value": value})
}

// CanTransitionTo reports whether target appears in this status's
// outgoing-edge set. Self-transitions are never legal.
func (s Status) CanTransitionTo(target Status) bool {
	for _, candidate := range statusTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// IsClosed is true for both RESOLVED and CLOSED: both block further content
// edits and reassignment, though not the transition edges out of them.
func (s Status) IsClosed() bool {
	return s == StatusClosed || s == StatusResolved
}

// IsOpen reports whether the ticket sits in the initial state.
func (s Status) IsOpen() bool {
	return s == StatusOpen
}

func (s Status) String() string {
	return string(s)
}
