package domain

import "time"

// Tenant represents an isolated organizer namespace. Every record in the
// system is owned by exactly one tenant and is invisible outside of it.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
