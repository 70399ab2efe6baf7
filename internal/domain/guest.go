package domain

import "time"

// Guest represents a registered guest of an event. The pointer fields are
// the personal fields: they are nullable in storage and are irreversibly
// nulled by the retention scheduler once the retention deadline passes.
// Package and the timestamps are operational fields and are never scrubbed.
type Guest struct {
	ID                string     `json:"id"`
	EventID           string     `json:"event_id"`
	Name              *string    `json:"name,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Company           *string    `json:"company,omitempty"`
	Dietary           *string    `json:"dietary,omitempty"`
	Package           string     `json:"package,omitempty"`
	RegisteredAt      time.Time  `json:"registered_at"`
	RetentionDeadline *time.Time `json:"retention_deadline,omitempty"`
}

// Scrubbed reports whether the guest's personal fields have already been
// erased. The retention sweep uses this to stay idempotent.
func (g *Guest) Scrubbed() bool {
	return g.Name == nil && g.Phone == nil && g.Email == nil &&
		g.Company == nil && g.Dietary == nil
}

// GuestRecord is the read-only projection handed to the export collaborator.
// Personal fields are present only when the guest has not been scrubbed.
type GuestRecord struct {
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
