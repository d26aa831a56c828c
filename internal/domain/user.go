package domain

import "time"

// UserRole enumerates help-desk roles.
type UserRole string

const (
	RoleRequester UserRole = "REQUESTER"
	RoleAgent     UserRole = "AGENT"
	RoleTech      UserRole = "TECH"
	RoleAdmin     UserRole = "ADMIN"
)

// User is an account known to the help desk: requesters open tickets,
// agents and technicians work them, admins manage areas and SLAs.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	Role         UserRole
	AreaID       *string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports administrator privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsAgent covers both agents and technicians.
func (u *User) IsAgent() bool {
	return u.Role == RoleAgent || u.Role == RoleTech
}

// CanAssignTickets reports whether the user may hand tickets to others.
func (u *User) CanAssignTickets() bool {
	return u.IsAdmin() || u.IsAgent()
}

// CanResolveTickets reports whether the user may be assigned and resolve
// tickets.
func (u *User) CanResolveTickets() bool {
	return u.IsAdmin() || u.IsAgent()
}

// CanManageArea reports whether the user administers the given area.
func (u *User) CanManageArea(areaID string) bool {
	if u.IsAdmin() {
		return true
	}
	return u.AreaID != nil && *u.AreaID == areaID
}
