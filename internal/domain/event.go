package domain

import "time"

// Event represents an event owned by a single tenant. Events are only ever
// visible or mutable through the owning tenant's handle.
type Event struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"` // nil = unlimited
	Open        bool       `json:"open"`               // registration-open flag
	FormFields  FormFields `json:"form_fields"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FormFields configures which personal fields the registration form collects
// for an event. Fields marked here as collected are required at issuance.
type FormFields struct {
	Name    bool `json:"name"`
	Phone   bool `json:"phone"`
	Email   bool `json:"email"`
	Company bool `json:"company"`
	Dietary bool `json:"dietary"`
}

// DefaultFormFields returns the field configuration used when an event does
// not specify one: name, phone and email collected, the rest off.
func DefaultFormFields() FormFields {
	return FormFields{Name: true, Phone: true, Email: true}
}

// HasCapacity reports whether the event enforces an upper bound on issuance.
func (e *Event) HasCapacity() bool {
	return e.Capacity != nil && *e.Capacity >= 0
}

// EventStats holds per-event aggregate counts for the organizer dashboard.
// The counts are computed over ticket rows only and therefore survive
// retention scrubbing.
type EventStats struct {
	Registered int `json:"registered"`
	CheckedIn  int `json:"checked_in"`
}
