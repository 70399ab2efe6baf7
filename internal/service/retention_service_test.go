package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Diaconix/event-manager/internal/dto"
)

func TestRetentionService_ScheduleDeletion(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	globex := env.createTenant(t, "Globex Events")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})
	issued := env.register(t, acme, eventID, fullRegistration("Ada"))

	deadline := time.Now().Add(-time.Minute)

	err := env.retention.ScheduleDeletion(context.Background(), acme, "no-such-guest", deadline)
	if !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("ScheduleDeletion() with unknown guest error = %v, want ErrGuestNotFound", err)
	}

	// Another tenant cannot schedule deletion for this guest.
	err = env.retention.ScheduleDeletion(context.Background(), globex, issued.GuestID, deadline)
	if !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("ScheduleDeletion() under other tenant error = %v, want ErrGuestNotFound", err)
	}

	if err := env.retention.ScheduleDeletion(context.Background(), acme, issued.GuestID, deadline); err != nil {
		t.Fatalf("ScheduleDeletion() error = %v", err)
	}
}

func TestRetentionService_RunDueDeletions(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night", FormFields: allFields()})

	ada := env.register(t, acme, eventID, &dto.RegisterGuestRequest{
		Name: "Ada", Phone: "555-0100", Email: "ada@example.com", Package: "vip",
	})
	bo := env.register(t, acme, eventID, fullRegistration("Bo"))

	// Ada checks in, then asks for deletion.
	if _, err := env.checkin.CheckIn(context.Background(), acme, ada.Token); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if err := env.retention.ScheduleDeletion(context.Background(), acme, ada.GuestID, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("ScheduleDeletion() error = %v", err)
	}

	n, err := env.retention.RunDueDeletions(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDueDeletions() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("Scrubbed %d guests, want 1", n)
	}

	guests, err := env.tickets.ListGuests(context.Background(), acme, eventID)
	if err != nil {
		t.Fatalf("ListGuests() error = %v", err)
	}
	if len(guests) != 2 {
		t.Fatalf("ListGuests() returned %d records, want 2: scrubbing must not delete rows", len(guests))
	}

	for _, guest := range guests {
		switch guest.GuestID {
		case ada.GuestID:
			if guest.Name != nil || guest.Phone != nil || guest.Email != nil {
				t.Errorf("Expected Ada's personal fields erased, got %+v", guest)
			}
			// Operational fields survive the scrub.
			if guest.Package != "vip" {
				t.Errorf("Package = %q, want vip", guest.Package)
			}
			if guest.State != "checked_in" || guest.CheckedInAt == nil {
				t.Errorf("Expected check-in state preserved, got state=%q checkedInAt=%v", guest.State, guest.CheckedInAt)
			}
		case bo.GuestID:
			if guest.Name == nil || *guest.Name != "Bo" {
				t.Errorf("Expected Bo untouched, got %+v", guest)
			}
		default:
			t.Errorf("Unexpected guest %q", guest.GuestID)
		}
	}

	// Aggregate counts survive scrubbing.
	stats, err := env.events.Stats(context.Background(), acme, eventID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Registered != 2 || stats.CheckedIn != 1 {
		t.Errorf("Stats = %+v, want registered=2 checked_in=1", stats)
	}

	// The scrubbed ticket's token no longer resolves.
	_, err = env.checkin.CheckIn(context.Background(), acme, ada.Token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("CheckIn() of scrubbed token error = %v, want ErrInvalidToken", err)
	}
}

// A second sweep over the same guests scrubs nothing: already-scrubbed
// guests are excluded from the due set.
func TestRetentionService_RunDueDeletions_Idempotent(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})
	issued := env.register(t, acme, eventID, fullRegistration("Ada"))

	if err := env.retention.ScheduleDeletion(context.Background(), acme, issued.GuestID, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("ScheduleDeletion() error = %v", err)
	}

	n, err := env.retention.RunDueDeletions(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("First RunDueDeletions() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("First sweep scrubbed %d, want 1", n)
	}

	n, err = env.retention.RunDueDeletions(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Second RunDueDeletions() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Second sweep scrubbed %d, want 0", n)
	}
}

func TestRetentionService_RunDueDeletions_Batches(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})

	svc := NewRetentionService(env.ticketRepo, env.pub, 3)

	const due = 7
	for i := 0; i < due; i++ {
		issued := env.register(t, acme, eventID, fullRegistration("Guest"))
		if err := svc.ScheduleDeletion(context.Background(), acme, issued.GuestID, time.Now().Add(-time.Minute)); err != nil {
			t.Fatalf("ScheduleDeletion() error = %v", err)
		}
	}

	n, err := svc.RunDueDeletions(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDueDeletions() error = %v", err)
	}
	if n != due {
		t.Errorf("Scrubbed %d guests across batches, want %d", n, due)
	}
}

func TestRetentionService_RunDueDeletions_NotYetDue(t *testing.T) {
	env := newTestEnv()
	acme := env.createTenant(t, "Acme Conferences")
	eventID := env.createEvent(t, acme, &dto.CreateEventRequest{Title: "Launch Night"})
	issued := env.register(t, acme, eventID, fullRegistration("Ada"))

	if err := env.retention.ScheduleDeletion(context.Background(), acme, issued.GuestID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("ScheduleDeletion() error = %v", err)
	}

	n, err := env.retention.RunDueDeletions(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDueDeletions() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Scrubbed %d guests before their deadline, want 0", n)
	}

	guests, err := env.tickets.ListGuests(context.Background(), acme, eventID)
	if err != nil {
		t.Fatalf("ListGuests() error = %v", err)
	}
	if guests[0].Name == nil {
		t.Error("Expected guest untouched before the deadline")
	}
}
