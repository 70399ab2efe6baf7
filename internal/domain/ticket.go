package domain

import "time"

// TicketState constants. The check-in engine only ever moves a ticket
// forward; there is no reverse transition in this core.
const (
	TicketStateIssued    = "issued"
	TicketStateCheckedIn = "checked_in"
)

// validTicketTransitions defines allowed state transitions.
// Key is current state, value is list of allowed next states.
var validTicketTransitions = map[string][]string{
	TicketStateIssued:    {TicketStateCheckedIn},
	TicketStateCheckedIn: {}, // Terminal for this core
}

// IsValidTicketState returns true if s is a known ticket state.
func IsValidTicketState(s string) bool {
	_, ok := validTicketTransitions[s]
	return ok
}

// CanTransitionTicket returns true if the transition from -> to is allowed.
func CanTransitionTicket(from, to string) bool {
	for _, allowed := range validTicketTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Ticket represents the single credential issued to a guest. The raw token
// is never stored: TokenVerifier holds a keyed one-way hash of it, so a
// storage read cannot be used to forge or replay tickets. Retention
// scrubbing replaces the verifier with an unusable marker while keeping
// state and timestamps for aggregate reporting.
type Ticket struct {
	ID            string     `json:"id"`
	GuestID       string     `json:"guest_id"`
	TokenVerifier string     `json:"-"`
	State         string     `json:"state"`
	IssuedAt      time.Time  `json:"issued_at"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
}
