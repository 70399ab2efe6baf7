package publisher

import (
	"context"
	"sync"
	"time"
)

// Record types emitted for the notification and export collaborators.
const (
	TypeGuestRegistered = "guest.registered"
	TypeGuestCheckedIn  = "guest.checked_in"
	TypeGuestScrubbed   = "guest.scrubbed"
)

// Record is a lifecycle notification. It carries identifiers only, never
// guest personal fields and never ticket tokens.
type Record struct {
	Type     string    `json:"type"`
	TenantID string    `json:"tenant_id"`
	EventID  string    `json:"event_id,omitempty"`
	GuestID  string    `json:"guest_id,omitempty"`
	TicketID string    `json:"ticket_id,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher emits lifecycle records to downstream collaborators
type Publisher interface {
	// Publish emits a record. Publishing is best-effort from the caller's
	// point of view: core operations never fail because a record could not
	// be emitted.
	Publish(ctx context.Context, rec *Record) error
	// Close flushes and releases the underlying producer
	Close()
}

// MemoryPublisher collects records in memory for tests
type MemoryPublisher struct {
	mu      sync.Mutex
	records []*Record
}

// NewMemoryPublisher creates a new in-memory publisher
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{records: make([]*Record, 0)}
}

// Publish collects the record
func (p *MemoryPublisher) Publish(ctx context.Context, rec *Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	copied := *rec
	p.records = append(p.records, &copied)
	return nil
}

// Close is a no-op
func (p *MemoryPublisher) Close() {}

// Records returns a snapshot of everything published so far
func (p *MemoryPublisher) Records() []*Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*Record, len(p.records))
	copy(out, p.records)
	return out
}
