package service

import (
	"context"
	"errors"
	"time"

	"github.com/Diaconix/event-manager/internal/dto"
	"github.com/Diaconix/event-manager/internal/publisher"
	"github.com/Diaconix/event-manager/internal/repository"
	"github.com/Diaconix/event-manager/pkg/telemetry"
)

var (
	// ErrInvalidToken covers unknown, malformed and other-tenant tokens
	// alike; callers can never tell those cases apart.
	ErrInvalidToken = errors.New("invalid ticket token")
)

// CheckInService defines the interface for the door check-in engine
type CheckInService interface {
	// CheckIn validates a scanned token under the caller's tenant and applies
	// the issued -> checked_in transition. Exactly one of any number of
	// concurrent scans of the same token observes FirstTime=true; repeat scans
	// report the guest again with FirstTime=false.
	CheckIn(ctx context.Context, tenantID, token string) (*dto.CheckInResponse, error)
}

// checkInService implements CheckInService
type checkInService struct {
	ticketRepo     repository.TicketRepository
	codec          *TokenCodec
	pub            publisher.Publisher
	checkedInTotal *telemetry.Counter
}

// NewCheckInService creates a new CheckInService
func NewCheckInService(ticketRepo repository.TicketRepository, codec *TokenCodec, pub publisher.Publisher) CheckInService {
	checkedInTotal, _ := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "guests_checked_in_total",
		Description: "Number of first-time check-ins",
		Unit:        "{guest}",
	})
	return &checkInService{
		ticketRepo:     ticketRepo,
		codec:          codec,
		pub:            pub,
		checkedInTotal: checkedInTotal,
	}
}

// CheckIn validates a scanned token and transitions the ticket
func (s *checkInService) CheckIn(ctx context.Context, tenantID, token string) (*dto.CheckInResponse, error) {
	// The scan text is opaque: it is hashed as-is, so malformed input takes
	// the same path as a well-formed unknown token.
	verifier := s.codec.Verifier(token)

	now := time.Now()
	rec, firstTime, err := s.ticketRepo.CheckIn(ctx, tenantID, verifier, now)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrInvalidToken
	}

	if firstTime {
		if s.checkedInTotal != nil {
			s.checkedInTotal.Inc(ctx)
		}
		if s.pub != nil {
			_ = s.pub.Publish(ctx, &publisher.Record{
				Type:     publisher.TypeGuestCheckedIn,
				TenantID: tenantID,
				GuestID:  rec.GuestID,
				TicketID: rec.TicketID,
				At:       now,
			})
		}
	}

	resp := &dto.CheckInResponse{
		FirstTime: firstTime,
		TicketID:  rec.TicketID,
		GuestName: rec.Name,
		Package:   rec.Package,
	}
	if rec.CheckedInAt != nil {
		resp.CheckedInAt = rec.CheckedInAt.Format(time.RFC3339)
	}
	return resp, nil
}
