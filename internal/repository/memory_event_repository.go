package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Diaconix/event-manager/internal/domain"
)

// MemoryEventRepository is an in-memory implementation of EventRepository
// for tests and local development.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

// NewMemoryEventRepository creates a new in-memory event repository
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{
		events: make(map[string]*domain.Event),
	}
}

func copyEvent(e *domain.Event) *domain.Event {
	copied := *e
	if e.StartsAt != nil {
		t := *e.StartsAt
		copied.StartsAt = &t
	}
	if e.Capacity != nil {
		c := *e.Capacity
		copied.Capacity = &c
	}
	return &copied
}

// Create creates a new event
func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[event.ID] = copyEvent(event)
	return nil
}

// GetByID retrieves an event by ID under the tenant
func (r *MemoryEventRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok || event.TenantID != tenantID {
		return nil, nil
	}
	return copyEvent(event), nil
}

// List retrieves the tenant's events, newest first
func (r *MemoryEventRepository) List(ctx context.Context, tenantID string) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*domain.Event, 0)
	for _, event := range r.events {
		if event.TenantID == tenantID {
			events = append(events, copyEvent(event))
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

// CloseRegistration sets the registration-open flag to false
func (r *MemoryEventRepository) CloseRegistration(ctx context.Context, tenantID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok || event.TenantID != tenantID {
		return false, nil
	}
	event.Open = false
	return true, nil
}
