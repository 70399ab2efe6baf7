package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Diaconix/event-manager/internal/dto"
	"github.com/Diaconix/event-manager/internal/publisher"
)

func TestCheckInService_CheckIn(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})
	issued := env.register(t, acme, eventID, fullRegistration("Ada"))

	first, err := env.checkin.CheckIn(context.Background(), acme, issued.Token)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if !first.FirstTime {
		t.Error("Expected FirstTime=true on the first scan")
	}
	if first.TicketID != issued.TicketID {
		t.Errorf("TicketID = %q, want %q", first.TicketID, issued.TicketID)
	}
	if first.GuestName == nil || *first.GuestName != "Ada" {
		t.Errorf("GuestName = %v, want Ada", first.GuestName)
	}
	if first.CheckedInAt == "" {
		t.Error("Expected a check-in timestamp")
	}

	// A repeat scan reports the guest again without claiming first entry.
	second, err := env.checkin.CheckIn(context.Background(), acme, issued.Token)
	if err != nil {
		t.Fatalf("Repeat CheckIn() error = %v", err)
	}
	if second.FirstTime {
		t.Error("Expected FirstTime=false on a repeat scan")
	}
	if second.TicketID != issued.TicketID {
		t.Errorf("Repeat TicketID = %q, want %q", second.TicketID, issued.TicketID)
	}
	if second.CheckedInAt != first.CheckedInAt {
		t.Errorf("Repeat CheckedInAt = %q, want the original %q", second.CheckedInAt, first.CheckedInAt)
	}
}

func TestCheckInService_CheckIn_InvalidToken(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	globex := env.createTenant(t, "Globex Events")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})
	issued := env.register(t, acme, eventID, fullRegistration("Ada"))

	// Unknown, malformed and other-tenant tokens are all the same error.
	tests := []struct {
		name     string
		tenantID string
		token    string
	}{
		{"unknown token", acme, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
		{"malformed token", acme, "definitely not a token!!"},
		{"empty token", acme, ""},
		{"other tenant's token", globex, issued.Token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.checkin.CheckIn(context.Background(), tt.tenantID, tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("CheckIn() error = %v, want ErrInvalidToken", err)
			}
		})
	}

	// The cross-tenant scan must not have consumed the ticket.
	resp, err := env.checkin.CheckIn(context.Background(), acme, issued.Token)
	if err != nil {
		t.Fatalf("CheckIn() under owning tenant error = %v", err)
	}
	if !resp.FirstTime {
		t.Error("Expected FirstTime=true: rejected scans must not transition the ticket")
	}
}

// Exactly one of any number of concurrent scans of the same token wins the
// issued -> checked_in transition.
func TestCheckInService_CheckIn_ConcurrentScans(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})
	issued := env.register(t, acme, eventID, fullRegistration("Ada"))

	const scans = 32
	var wg sync.WaitGroup
	results := make(chan *dto.CheckInResponse, scans)

	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := env.checkin.CheckIn(context.Background(), acme, issued.Token)
			if err != nil {
				t.Errorf("CheckIn() error = %v", err)
				return
			}
			results <- resp
		}()
	}
	wg.Wait()
	close(results)

	firstTimes := 0
	for resp := range results {
		if resp.FirstTime {
			firstTimes++
		}
		if resp.TicketID != issued.TicketID {
			t.Errorf("TicketID = %q, want %q", resp.TicketID, issued.TicketID)
		}
	}
	if firstTimes != 1 {
		t.Errorf("FirstTime observed %d times, want exactly 1", firstTimes)
	}
}

func TestCheckInService_CheckIn_EmitsRecordOnce(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})
	issued := env.register(t, acme, eventID, fullRegistration("Ada"))

	for i := 0; i < 3; i++ {
		if _, err := env.checkin.CheckIn(context.Background(), acme, issued.Token); err != nil {
			t.Fatalf("CheckIn() error = %v", err)
		}
	}

	checkedIn := 0
	for _, rec := range env.pub.Records() {
		if rec.Type == publisher.TypeGuestCheckedIn {
			checkedIn++
			if rec.TicketID != issued.TicketID {
				t.Errorf("Record TicketID = %q, want %q", rec.TicketID, issued.TicketID)
			}
		}
	}
	if checkedIn != 1 {
		t.Errorf("Published %d check-in records, want 1", checkedIn)
	}
}

func TestCheckInService_CheckIn_CountsInStats(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})
	ada := env.register(t, acme, eventID, fullRegistration("Ada"))
	env.register(t, acme, eventID, fullRegistration("Bo"))

	if _, err := env.checkin.CheckIn(context.Background(), acme, ada.Token); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	stats, err := env.events.Stats(context.Background(), acme, eventID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Registered != 2 || stats.CheckedIn != 1 {
		t.Errorf("Stats = %+v, want registered=2 checked_in=1", stats)
	}
}
