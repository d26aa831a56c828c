package domain

import "time"

// Area is an organizational unit that owns tickets and the SLAs applied to
// them.
type Area struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment is a threaded note on a ticket. Internal comments are visible to
// staff only.
type Comment struct {
	ID         string
	TicketID   string
	UserID     string
	Content    string
	IsInternal bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Attachment records file metadata hanging off a ticket; the bytes live in
// external storage under StorageKey.
type Attachment struct {
	ID         string
	TicketID   string
	UploadedBy string
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}

// AuditTrail is one immutable entry in a ticket's audit log, written by the
// audit event handler once per dispatched event.
type AuditTrail struct {
	ID         string
	TicketID   string
	ActorID    string
	Action     string
	Details    map[string]any
	OccurredAt time.Time
}
