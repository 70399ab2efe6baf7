package service

import (
	"context"
	"errors"
	"time"

	"github.com/Diaconix/event-manager/internal/publisher"
	"github.com/Diaconix/event-manager/internal/repository"
	"github.com/Diaconix/event-manager/pkg/telemetry"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
)

// defaultScrubBatch bounds how many guests one RunDueDeletions batch touches
const defaultScrubBatch = 100

// RetentionService defines the interface for the retention scheduler
type RetentionService interface {
	// ScheduleDeletion sets or moves the guest's retention deadline
	ScheduleDeletion(ctx context.Context, tenantID, guestID string, deadline time.Time) error
	// RunDueDeletions scrubs the personal fields of every guest whose
	// deadline is at or before now, in batches, and returns how many guests
	// were scrubbed. Re-running it is idempotent: already-scrubbed guests
	// are excluded.
	RunDueDeletions(ctx context.Context, now time.Time) (int, error)
}

// retentionService implements RetentionService
type retentionService struct {
	ticketRepo    repository.TicketRepository
	pub           publisher.Publisher
	batchSize     int
	scrubbedTotal *telemetry.Counter
}

// NewRetentionService creates a new RetentionService
func NewRetentionService(ticketRepo repository.TicketRepository, pub publisher.Publisher, batchSize int) RetentionService {
	if batchSize <= 0 {
		batchSize = defaultScrubBatch
	}
	scrubbedTotal, _ := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "guests_scrubbed_total",
		Description: "Number of guests whose personal fields were erased",
		Unit:        "{guest}",
	})
	return &retentionService{
		ticketRepo:    ticketRepo,
		pub:           pub,
		batchSize:     batchSize,
		scrubbedTotal: scrubbedTotal,
	}
}

// ScheduleDeletion sets or moves the guest's retention deadline
func (s *retentionService) ScheduleDeletion(ctx context.Context, tenantID, guestID string, deadline time.Time) error {
	found, err := s.ticketRepo.ScheduleDeletion(ctx, tenantID, guestID, deadline)
	if err != nil {
		return err
	}
	if !found {
		return ErrGuestNotFound
	}
	return nil
}

// RunDueDeletions scrubs due guests in batches until none remain
func (s *retentionService) RunDueDeletions(ctx context.Context, now time.Time) (int, error) {
	total := 0
	for {
		n, err := s.ticketRepo.ScrubDue(ctx, now, s.batchSize)
		total += n
		if err != nil {
			return total, err
		}
		if n > 0 {
			if s.scrubbedTotal != nil {
				s.scrubbedTotal.Add(ctx, int64(n))
			}
			if s.pub != nil {
				_ = s.pub.Publish(ctx, &publisher.Record{
					Type: publisher.TypeGuestScrubbed,
					At:   now,
				})
			}
		}
		if n < s.batchSize {
			return total, nil
		}
	}
}
