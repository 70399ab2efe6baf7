package repository

import (
	"context"

	"github.com/Diaconix/event-manager/internal/domain"
)

// TenantRepository defines the interface for tenant data access
type TenantRepository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *domain.Tenant) error
	// GetByID retrieves a tenant by ID, returning nil when absent
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	// ExistsByName checks if a tenant exists with the given name
	ExistsByName(ctx context.Context, name string) (bool, error)
}
