package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Diaconix/event-manager/internal/domain"
)

// Errors the ticket repository must be able to signal from inside its
// atomicity boundary. Everything else follows the nil-when-absent convention.
var (
	// ErrCapacityExceeded is returned when inserting the guest/ticket pair
	// would push the event's ticket count past its capacity.
	ErrCapacityExceeded = errors.New("event capacity exceeded")
)

// TicketRepository defines the interface for guest and ticket data access.
// Guests and tickets are created and read as one unit; all reads and writes
// are filtered by the caller's tenant ID.
type TicketRepository interface {
	// Issue persists the guest and ticket in one atomic unit. When the event
	// carries a capacity, the check against the current ticket count happens
	// inside the same atomicity boundary as the insert, so two concurrent
	// registrations cannot both pass a pre-check. Returns ErrCapacityExceeded
	// when the post-insert count would exceed capacity.
	Issue(ctx context.Context, event *domain.Event, guest *domain.Guest, ticket *domain.Ticket) error

	// CheckIn resolves a ticket by its token verifier under the tenant and
	// applies the issued -> checked_in transition as a single conditional
	// update. Exactly one of any number of concurrent calls for the same
	// ticket observes firstTime=true. Returns (nil, false, nil) when the
	// verifier does not resolve under the tenant, whatever the true cause.
	CheckIn(ctx context.Context, tenantID, verifier string, at time.Time) (*domain.GuestRecord, bool, error)

	// ListGuests returns the event's guest records for the export
	// collaborator, ordered by registration time. Personal fields are nil
	// for scrubbed guests.
	ListGuests(ctx context.Context, tenantID, eventID string) ([]*domain.GuestRecord, error)

	// Stats returns the event's aggregate counts, nil when the event does
	// not resolve under the tenant.
	Stats(ctx context.Context, tenantID, eventID string) (*domain.EventStats, error)

	// ScheduleDeletion sets the guest's retention deadline. Returns false
	// when the guest does not resolve under the tenant.
	ScheduleDeletion(ctx context.Context, tenantID, guestID string, deadline time.Time) (bool, error)

	// ScrubDue nulls the personal fields of up to limit guests whose
	// retention deadline is at or before now and replaces their ticket
	// verifiers with unusable markers. Each guest is scrubbed in its own
	// short atomic update; already-scrubbed guests are excluded, so the
	// sweep is idempotent. Returns the number of guests scrubbed.
	ScrubDue(ctx context.Context, now time.Time, limit int) (int, error)
}
