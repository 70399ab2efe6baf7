package repository

import (
	"context"
	"sync"

	"github.com/Diaconix/event-manager/internal/domain"
)

// MemoryTenantRepository is an in-memory implementation of TenantRepository
// for tests and local development.
type MemoryTenantRepository struct {
	mu      sync.RWMutex
	tenants map[string]*domain.Tenant
}

// NewMemoryTenantRepository creates a new in-memory tenant repository
func NewMemoryTenantRepository() *MemoryTenantRepository {
	return &MemoryTenantRepository{
		tenants: make(map[string]*domain.Tenant),
	}
}

// Create creates a new tenant
func (r *MemoryTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *tenant
	r.tenants[tenant.ID] = &copied
	return nil
}

// GetByID retrieves a tenant by ID
func (r *MemoryTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tenant, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	copied := *tenant
	return &copied, nil
}

// ExistsByName checks if a tenant exists with the given name
func (r *MemoryTenantRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tenant := range r.tenants {
		if tenant.Name == name {
			return true, nil
		}
	}
	return false, nil
}
