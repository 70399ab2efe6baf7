package dto

import "time"

// RegisterGuestRequest represents a guest registration against an event.
// Which fields are required depends on the event's form configuration and
// is validated by the service, not by binding tags.
type RegisterGuestRequest struct {
	Name    string `json:"name" binding:"omitempty,max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=64"`
	Email   string `json:"email" binding:"omitempty,max=255"`
	Company string `json:"company" binding:"omitempty,max=255"`
	Dietary string `json:"dietary" binding:"omitempty,max=255"`
	Package string `json:"package" binding:"omitempty,max=255"`
	// RetentionDeadline optionally schedules personal-data deletion at
	// registration time. A nil value leaves the policy default in force.
	RetentionDeadline *time.Time `json:"retention_deadline" binding:"omitempty"`
}

// IssueTicketResponse carries the ticket ID and the raw token. This is the
// only time the token is ever disclosed; the rendering collaborator encodes
// it into a scannable image.
type IssueTicketResponse struct {
	TicketID string `json:"ticket_id"`
	GuestID  string `json:"guest_id"`
	Token    string `json:"token"`
}

// GuestRecordResponse represents one row of the export listing
type GuestRecordResponse struct {
	GuestID      string     `json:"guest_id"`
	TicketID     string     `json:"ticket_id"`
	Name         *string    `json:"name,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Dietary      *string    `json:"dietary,omitempty"`
	Package      string     `json:"package,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
	State        string     `json:"state"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
}
