package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Diaconix/event-manager/internal/domain"
	"github.com/Diaconix/event-manager/internal/dto"
	"github.com/Diaconix/event-manager/internal/publisher"
	"github.com/Diaconix/event-manager/internal/repository"
	"github.com/Diaconix/event-manager/pkg/telemetry"
)

var (
	ErrRegistrationClosed   = errors.New("registration is closed for this event")
	ErrCapacityExceeded     = errors.New("event capacity exceeded")
	ErrMissingRequiredField = errors.New("missing required field")
)

// TicketService defines the interface for ticket issuance and the export
// read surface.
type TicketService interface {
	// Issue registers a guest and mints their ticket. The returned token is
	// disclosed here exactly once and is never re-derivable from storage.
	Issue(ctx context.Context, tenantID, eventID string, req *dto.RegisterGuestRequest) (*dto.IssueTicketResponse, error)
	// ListGuests returns the event's guest records for the export collaborator
	ListGuests(ctx context.Context, tenantID, eventID string) ([]dto.GuestRecordResponse, error)
}

// TicketServiceConfig holds issuance settings
type TicketServiceConfig struct {
	// DefaultRetention, when non-zero, sets a policy-default retention
	// deadline on every guest that does not specify one.
	DefaultRetention time.Duration
}

// ticketService implements TicketService
type ticketService struct {
	eventRepo   repository.EventRepository
	ticketRepo  repository.TicketRepository
	codec       *TokenCodec
	pub         publisher.Publisher
	config      *TicketServiceConfig
	issuedTotal *telemetry.Counter
}

// NewTicketService creates a new TicketService
func NewTicketService(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	codec *TokenCodec,
	pub publisher.Publisher,
	config *TicketServiceConfig,
) TicketService {
	if config == nil {
		config = &TicketServiceConfig{}
	}
	issuedTotal, _ := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "tickets_issued_total",
		Description: "Number of tickets issued",
		Unit:        "{ticket}",
	})
	return &ticketService{
		eventRepo:   eventRepo,
		ticketRepo:  ticketRepo,
		codec:       codec,
		pub:         pub,
		config:      config,
		issuedTotal: issuedTotal,
	}
}

// Issue registers a guest and mints their ticket
func (s *ticketService) Issue(ctx context.Context, tenantID, eventID string, req *dto.RegisterGuestRequest) (*dto.IssueTicketResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if !event.Open {
		return nil, ErrRegistrationClosed
	}

	if err := validateFormFields(event.FormFields, req); err != nil {
		return nil, err
	}

	token, verifier, err := s.codec.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	deadline := req.RetentionDeadline
	if deadline == nil && s.config.DefaultRetention > 0 {
		d := now.Add(s.config.DefaultRetention)
		deadline = &d
	}

	guest := &domain.Guest{
		ID:                uuid.New().String(),
		EventID:           event.ID,
		Name:              collectedField(event.FormFields.Name, req.Name),
		Phone:             collectedField(event.FormFields.Phone, req.Phone),
		Email:             collectedField(event.FormFields.Email, req.Email),
		Company:           collectedField(event.FormFields.Company, req.Company),
		Dietary:           collectedField(event.FormFields.Dietary, req.Dietary),
		Package:           req.Package,
		RegisteredAt:      now,
		RetentionDeadline: deadline,
	}
	ticket := &domain.Ticket{
		ID:            uuid.New().String(),
		GuestID:       guest.ID,
		TokenVerifier: verifier,
		State:         domain.TicketStateIssued,
		IssuedAt:      now,
	}

	if err := s.ticketRepo.Issue(ctx, event, guest, ticket); err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return nil, ErrCapacityExceeded
		}
		return nil, err
	}

	if s.issuedTotal != nil {
		s.issuedTotal.Inc(ctx)
	}
	if s.pub != nil {
		_ = s.pub.Publish(ctx, &publisher.Record{
			Type:     publisher.TypeGuestRegistered,
			TenantID: tenantID,
			EventID:  event.ID,
			GuestID:  guest.ID,
			TicketID: ticket.ID,
			At:       now,
		})
	}

	return &dto.IssueTicketResponse{
		TicketID: ticket.ID,
		GuestID:  guest.ID,
		Token:    token,
	}, nil
}

// ListGuests returns the event's guest records for the export collaborator
func (s *ticketService) ListGuests(ctx context.Context, tenantID, eventID string) ([]dto.GuestRecordResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	records, err := s.ticketRepo.ListGuests(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GuestRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, dto.GuestRecordResponse{
			GuestID:      rec.GuestID,
			TicketID:     rec.TicketID,
			Name:         rec.Name,
			Phone:        rec.Phone,
			Email:        rec.Email,
			Company:      rec.Company,
			Dietary:      rec.Dietary,
			Package:      rec.Package,
			RegisteredAt: rec.RegisteredAt,
			State:        rec.State,
			CheckedInAt:  rec.CheckedInAt,
		})
	}
	return responses, nil
}

// validateFormFields enforces the event's registration form configuration.
// Name, phone and email are required when collected; company and dietary are
// optional even when the form collects them.
func validateFormFields(fields domain.FormFields, req *dto.RegisterGuestRequest) error {
	if fields.Name && req.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	if fields.Phone && req.Phone == "" {
		return fmt.Errorf("%w: phone", ErrMissingRequiredField)
	}
	if fields.Email && req.Email == "" {
		return fmt.Errorf("%w: email", ErrMissingRequiredField)
	}
	return nil
}

// collectedField returns a pointer to the value when the form collects the
// field and the guest supplied one, nil otherwise. Fields the form does not
// collect are never stored.
func collectedField(collected bool, value string) *string {
	if !collected || value == "" {
		return nil
	}
	return &value
}
