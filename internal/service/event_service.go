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
	ErrEventNotFound = errors.New("event not found")
)

// EventService defines the interface for tenant-scoped event operations
type EventService interface {
	// Create creates a new event under the tenant
	Create(ctx context.Context, tenantID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// Get retrieves an event under the tenant
	Get(ctx context.Context, tenantID, eventID string) (*dto.EventResponse, error)
	// List retrieves the tenant's events, newest first
	List(ctx context.Context, tenantID string) ([]dto.EventResponse, error)
	// CloseRegistration stops further ticket issuance for the event
	CloseRegistration(ctx context.Context, tenantID, eventID string) error
	// Stats returns the event's aggregate registration/check-in counts
	Stats(ctx context.Context, tenantID, eventID string) (*dto.EventStatsResponse, error)
}

// eventService implements EventService
type eventService struct {
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	tenantRepo repository.TenantRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, ticketRepo repository.TicketRepository, tenantRepo repository.TenantRepository) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		tenantRepo: tenantRepo,
	}
}

// Create creates a new event under the tenant
func (s *eventService) Create(ctx context.Context, tenantID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	fields := domain.DefaultFormFields()
	if req.FormFields != nil {
		fields = domain.FormFields{
			Name:    req.FormFields.Name,
			Phone:   req.FormFields.Phone,
			Email:   req.FormFields.Email,
			Company: req.FormFields.Company,
			Dietary: req.FormFields.Dietary,
		}
	}

	event := &domain.Event{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
		Open:        true,
		FormFields:  fields,
		CreatedAt:   time.Now(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return toEventResponse(event), nil
}

// Get retrieves an event under the tenant
func (s *eventService) Get(ctx context.Context, tenantID, eventID string) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return toEventResponse(event), nil
}

// List retrieves the tenant's events, newest first
func (s *eventService) List(ctx context.Context, tenantID string) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, *toEventResponse(event))
	}
	return responses, nil
}

// CloseRegistration stops further ticket issuance for the event
func (s *eventService) CloseRegistration(ctx context.Context, tenantID, eventID string) error {
	found, err := s.eventRepo.CloseRegistration(ctx, tenantID, eventID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEventNotFound
	}
	return nil
}

// Stats returns the event's aggregate registration/check-in counts
func (s *eventService) Stats(ctx context.Context, tenantID, eventID string) (*dto.EventStatsResponse, error) {
	stats, err := s.ticketRepo.Stats(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrEventNotFound
	}
	return &dto.EventStatsResponse{
		EventID:    eventID,
		Registered: stats.Registered,
		CheckedIn:  stats.CheckedIn,
	}, nil
}

// toEventResponse converts domain.Event to dto.EventResponse
func toEventResponse(event *domain.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		StartsAt:    event.StartsAt,
		Capacity:    event.Capacity,
		Open:        event.Open,
		FormFields: dto.FormFields{
			Name:    event.FormFields.Name,
			Phone:   event.FormFields.Phone,
			Email:   event.FormFields.Email,
			Company: event.FormFields.Company,
			Dietary: event.FormFields.Dietary,
		},
		CreatedAt: event.CreatedAt.Format(time.RFC3339),
	}
}
