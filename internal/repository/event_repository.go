package repository

import (
	"context"

	"github.com/Diaconix/event-manager/internal/domain"
)

// EventRepository defines the interface for event data access. Every method
// takes the caller's tenant ID and filters by it; a record owned by another
// tenant is reported as absent, never as a distinguishable error.
type EventRepository interface {
	// Create creates a new event under its tenant
	Create(ctx context.Context, event *domain.Event) error
	// GetByID retrieves an event by ID under the tenant, nil when absent
	GetByID(ctx context.Context, tenantID, id string) (*domain.Event, error)
	// List retrieves the tenant's events ordered by creation time, newest first
	List(ctx context.Context, tenantID string) ([]*domain.Event, error)
	// CloseRegistration sets the registration-open flag to false.
	// Returns false when the event does not resolve under the tenant.
	CloseRegistration(ctx context.Context, tenantID, id string) (bool, error)
}
