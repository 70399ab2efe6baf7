package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Diaconix/event-manager/internal/domain"
)

// MemoryTicketRepository is an in-memory implementation of TicketRepository
// for tests and local development. A single mutex is the atomicity boundary:
// the capacity check plus insert and the check-in state transition each run
// under it, matching the transactional guarantees of the Postgres
// implementation.
type MemoryTicketRepository struct {
	mu         sync.RWMutex
	guests     map[string]*domain.Guest
	tickets    map[string]*domain.Ticket
	byVerifier map[string]string // token_verifier -> ticketID
	events     *MemoryEventRepository
}

// NewMemoryTicketRepository creates a new in-memory ticket repository backed
// by the given event repository for tenant scoping and capacity lookups.
func NewMemoryTicketRepository(events *MemoryEventRepository) *MemoryTicketRepository {
	return &MemoryTicketRepository{
		guests:     make(map[string]*domain.Guest),
		tickets:    make(map[string]*domain.Ticket),
		byVerifier: make(map[string]string),
		events:     events,
	}
}

func copyGuest(g *domain.Guest) *domain.Guest {
	copied := *g
	copied.Name = copyStringPtr(g.Name)
	copied.Phone = copyStringPtr(g.Phone)
	copied.Email = copyStringPtr(g.Email)
	copied.Company = copyStringPtr(g.Company)
	copied.Dietary = copyStringPtr(g.Dietary)
	if g.RetentionDeadline != nil {
		t := *g.RetentionDeadline
		copied.RetentionDeadline = &t
	}
	return &copied
}

func copyTicket(t *domain.Ticket) *domain.Ticket {
	copied := *t
	if t.CheckedInAt != nil {
		at := *t.CheckedInAt
		copied.CheckedInAt = &at
	}
	return &copied
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// record builds the GuestRecord projection for a guest/ticket pair.
// Callers must hold at least the read lock.
func (r *MemoryTicketRepository) record(g *domain.Guest, t *domain.Ticket) *domain.GuestRecord {
	rec := &domain.GuestRecord{
		GuestID:      g.ID,
		TicketID:     t.ID,
		Name:         copyStringPtr(g.Name),
		Phone:        copyStringPtr(g.Phone),
		Email:        copyStringPtr(g.Email),
		Company:      copyStringPtr(g.Company),
		Dietary:      copyStringPtr(g.Dietary),
		Package:      g.Package,
		RegisteredAt: g.RegisteredAt,
		State:        t.State,
	}
	if t.CheckedInAt != nil {
		at := *t.CheckedInAt
		rec.CheckedInAt = &at
	}
	return rec
}

// countForEvent counts tickets issued against an event.
// Callers must hold at least the read lock.
func (r *MemoryTicketRepository) countForEvent(eventID string) (total, checkedIn int) {
	for _, g := range r.guests {
		if g.EventID != eventID {
			continue
		}
		for _, t := range r.tickets {
			if t.GuestID == g.ID {
				total++
				if t.CheckedInAt != nil {
					checkedIn++
				}
			}
		}
	}
	return total, checkedIn
}

// Issue persists the guest and ticket atomically with the capacity check
func (r *MemoryTicketRepository) Issue(ctx context.Context, event *domain.Event, guest *domain.Guest, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.HasCapacity() {
		total, _ := r.countForEvent(event.ID)
		if total+1 > *event.Capacity {
			return ErrCapacityExceeded
		}
	}

	r.guests[guest.ID] = copyGuest(guest)
	r.tickets[ticket.ID] = copyTicket(ticket)
	r.byVerifier[ticket.TokenVerifier] = ticket.ID
	return nil
}

// resolveTenant walks guest -> event to find the owning tenant.
// Callers must hold at least the read lock.
func (r *MemoryTicketRepository) resolveTenant(g *domain.Guest) string {
	r.events.mu.RLock()
	defer r.events.mu.RUnlock()

	event, ok := r.events.events[g.EventID]
	if !ok {
		return ""
	}
	return event.TenantID
}

// CheckIn applies the issued -> checked_in transition under the mutex
func (r *MemoryTicketRepository) CheckIn(ctx context.Context, tenantID, verifier string, at time.Time) (*domain.GuestRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticketID, ok := r.byVerifier[verifier]
	if !ok {
		return nil, false, nil
	}
	ticket := r.tickets[ticketID]
	guest := r.guests[ticket.GuestID]
	if guest == nil || r.resolveTenant(guest) != tenantID {
		return nil, false, nil
	}

	if domain.CanTransitionTicket(ticket.State, domain.TicketStateCheckedIn) {
		ticket.State = domain.TicketStateCheckedIn
		checkedInAt := at
		ticket.CheckedInAt = &checkedInAt
		return r.record(guest, ticket), true, nil
	}
	return r.record(guest, ticket), false, nil
}

// ListGuests returns the event's guest records, ordered by registration time
func (r *MemoryTicketRepository) ListGuests(ctx context.Context, tenantID, eventID string) ([]*domain.GuestRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, err := r.events.GetByID(ctx, tenantID, eventID)
	if err != nil || event == nil {
		return []*domain.GuestRecord{}, err
	}

	records := make([]*domain.GuestRecord, 0)
	for _, g := range r.guests {
		if g.EventID != eventID {
			continue
		}
		for _, t := range r.tickets {
			if t.GuestID == g.ID {
				records = append(records, r.record(g, t))
			}
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].RegisteredAt.Before(records[j].RegisteredAt)
	})
	return records, nil
}

// Stats returns the event's aggregate counts
func (r *MemoryTicketRepository) Stats(ctx context.Context, tenantID, eventID string) (*domain.EventStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, err := r.events.GetByID(ctx, tenantID, eventID)
	if err != nil || event == nil {
		return nil, err
	}

	total, checkedIn := r.countForEvent(eventID)
	return &domain.EventStats{Registered: total, CheckedIn: checkedIn}, nil
}

// ScheduleDeletion sets the guest's retention deadline under the tenant
func (r *MemoryTicketRepository) ScheduleDeletion(ctx context.Context, tenantID, guestID string, deadline time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	guest, ok := r.guests[guestID]
	if !ok || r.resolveTenant(guest) != tenantID {
		return false, nil
	}
	d := deadline
	guest.RetentionDeadline = &d
	return true, nil
}

// ScrubDue erases personal fields of guests whose deadline has passed
func (r *MemoryTicketRepository) ScrubDue(ctx context.Context, now time.Time, limit int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	scrubbed := 0
	for _, guest := range r.guests {
		if scrubbed >= limit {
			break
		}
		if guest.RetentionDeadline == nil || guest.RetentionDeadline.After(now) {
			continue
		}
		if guest.Scrubbed() {
			continue
		}

		guest.Name = nil
		guest.Phone = nil
		guest.Email = nil
		guest.Company = nil
		guest.Dietary = nil

		for _, ticket := range r.tickets {
			if ticket.GuestID != guest.ID {
				continue
			}
			if !strings.HasPrefix(ticket.TokenVerifier, "scrubbed:") {
				delete(r.byVerifier, ticket.TokenVerifier)
				ticket.TokenVerifier = "scrubbed:" + ticket.ID
			}
		}
		scrubbed++
	}
	return scrubbed, nil
}
