package di

import (
	"github.com/Diaconix/event-manager/internal/handler"
	"github.com/Diaconix/event-manager/internal/publisher"
	"github.com/Diaconix/event-manager/internal/repository"
	"github.com/Diaconix/event-manager/internal/service"
	"github.com/Diaconix/event-manager/internal/worker"
	"github.com/Diaconix/event-manager/pkg/database"
)

// Container holds all dependencies for the server
type Container struct {
	// Infrastructure
	DB        *database.PostgresDB
	Publisher publisher.Publisher

	// Repositories
	TenantRepo repository.TenantRepository
	EventRepo  repository.EventRepository
	TicketRepo repository.TicketRepository

	// Services
	TenantService    service.TenantService
	EventService     service.EventService
	TicketService    service.TicketService
	CheckInService   service.CheckInService
	RetentionService service.RetentionService

	// Workers
	RetentionWorker *worker.RetentionWorker

	// Handlers
	HealthHandler       *handler.HealthHandler
	TenantHandler       *handler.TenantHandler
	EventHandler        *handler.EventHandler
	RegistrationHandler *handler.RegistrationHandler
	CheckInHandler      *handler.CheckInHandler
	RetentionHandler    *handler.RetentionHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB          *database.PostgresDB
	Publisher   publisher.Publisher
	TenantRepo  repository.TenantRepository
	EventRepo   repository.EventRepository
	TicketRepo  repository.TicketRepository
	VerifierKey []byte
	Tenant      *service.TenantServiceConfig
	Ticket      *service.TicketServiceConfig
	Worker      *worker.RetentionWorkerConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:         cfg.DB,
		Publisher:  cfg.Publisher,
		TenantRepo: cfg.TenantRepo,
		EventRepo:  cfg.EventRepo,
		TicketRepo: cfg.TicketRepo,
	}

	codec := service.NewTokenCodec(cfg.VerifierKey)

	// Initialize services
	c.TenantService = service.NewTenantService(c.TenantRepo, cfg.Tenant)
	c.EventService = service.NewEventService(c.EventRepo, c.TicketRepo, c.TenantRepo)
	c.TicketService = service.NewTicketService(c.EventRepo, c.TicketRepo, codec, c.Publisher, cfg.Ticket)
	c.CheckInService = service.NewCheckInService(c.TicketRepo, codec, c.Publisher)
	batchSize := 0
	if cfg.Worker != nil {
		batchSize = cfg.Worker.BatchSize
	}
	c.RetentionService = service.NewRetentionService(c.TicketRepo, c.Publisher, batchSize)

	// Initialize workers
	c.RetentionWorker = worker.NewRetentionWorker(c.RetentionService, nil, cfg.Worker)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB)
	c.TenantHandler = handler.NewTenantHandler(c.TenantService)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.RegistrationHandler = handler.NewRegistrationHandler(c.TicketService, c.RetentionService)
	c.CheckInHandler = handler.NewCheckInHandler(c.CheckInService)
	c.RetentionHandler = handler.NewRetentionHandler(c.RetentionService)

	return c
}
