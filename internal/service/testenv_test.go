package service

import (
	"context"
	"testing"

	"github.com/Diaconix/event-manager/internal/dto"
	"github.com/Diaconix/event-manager/internal/publisher"
	"github.com/Diaconix/event-manager/internal/repository"
)

// testEnv wires the services over the in-memory repositories the way the
// container does over Postgres.
type testEnv struct {
	tenantRepo *repository.MemoryTenantRepository
	eventRepo  *repository.MemoryEventRepository
	ticketRepo *repository.MemoryTicketRepository
	codec      *TokenCodec
	pub        *publisher.MemoryPublisher

	tenants   TenantService
	events    EventService
	tickets   TicketService
	checkin   CheckInService
	retention RetentionService
}

func newTestEnv() *testEnv {
	tenantRepo := repository.NewMemoryTenantRepository()
	eventRepo := repository.NewMemoryEventRepository()
	ticketRepo := repository.NewMemoryTicketRepository(eventRepo)
	codec := NewTokenCodec([]byte("test-verifier-key"))
	pub := publisher.NewMemoryPublisher()

	return &testEnv{
		tenantRepo: tenantRepo,
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		codec:      codec,
		pub:        pub,
		tenants:    NewTenantService(tenantRepo, nil),
		events:     NewEventService(eventRepo, ticketRepo, tenantRepo),
		tickets:    NewTicketService(eventRepo, ticketRepo, codec, pub, nil),
		checkin:    NewCheckInService(ticketRepo, codec, pub),
		retention:  NewRetentionService(ticketRepo, pub, 0),
	}
}

func (e *testEnv) createTenant(t *testing.T, name string) string {
	t.Helper()
	tenant, err := e.tenants.Create(context.Background(), &dto.CreateTenantRequest{Name: name})
	if err != nil {
		t.Fatalf("Create tenant %q error = %v", name, err)
	}
	return tenant.ID
}

func (e *testEnv) createEvent(t *testing.T, tenantID string, req *dto.CreateEventRequest) string {
	t.Helper()
	event, err := e.events.Create(context.Background(), tenantID, req)
	if err != nil {
		t.Fatalf("Create event %q error = %v", req.Title, err)
	}
	return event.ID
}

func (e *testEnv) register(t *testing.T, tenantID, eventID string, req *dto.RegisterGuestRequest) *dto.IssueTicketResponse {
	t.Helper()
	resp, err := e.tickets.Issue(context.Background(), tenantID, eventID, req)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}
	return resp
}

// allFields enables every form field so helpers can register guests with any
// combination of values.
func allFields() *dto.FormFields {
	return &dto.FormFields{Name: true, Phone: true, Email: true, Company: true, Dietary: true}
}

func fullRegistration(name string) *dto.RegisterGuestRequest {
	return &dto.RegisterGuestRequest{
		Name:  name,
		Phone: "555-0100",
		Email: name + "@example.com",
	}
}
