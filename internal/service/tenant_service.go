package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Diaconix/event-manager/internal/domain"
	"github.com/Diaconix/event-manager/internal/dto"
	"github.com/Diaconix/event-manager/internal/repository"
)

var (
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrTenantNameTaken = errors.New("tenant with this name already exists")
)

// TenantService defines the interface for tenant registry operations
type TenantService interface {
	// Create registers a new tenant namespace
	Create(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error)
	// Resolve retrieves a tenant by its handle
	Resolve(ctx context.Context, id string) (*dto.TenantResponse, error)
}

// TenantServiceConfig holds tenant registry settings
type TenantServiceConfig struct {
	// UniqueNames requires display names to be unique across tenants.
	// Tenant IDs are system-generated and unique regardless.
	UniqueNames bool
}

// tenantService implements TenantService
type tenantService struct {
	tenantRepo repository.TenantRepository
	config     *TenantServiceConfig
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo repository.TenantRepository, config *TenantServiceConfig) TenantService {
	if config == nil {
		config = &TenantServiceConfig{UniqueNames: true}
	}
	return &tenantService{
		tenantRepo: tenantRepo,
		config:     config,
	}
}

// Create registers a new tenant namespace
func (s *tenantService) Create(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if s.config.UniqueNames {
		exists, err := s.tenantRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrTenantNameTaken
		}
	}

	tenant := &domain.Tenant{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return toTenantResponse(tenant), nil
}

// Resolve retrieves a tenant by its handle
func (s *tenantService) Resolve(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return toTenantResponse(tenant), nil
}

// toTenantResponse converts domain.Tenant to dto.TenantResponse
func toTenantResponse(tenant *domain.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        tenant.ID,
		Name:      tenant.Name,
		CreatedAt: tenant.CreatedAt.Format(time.RFC3339),
	}
}
