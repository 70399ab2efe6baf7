package domain

import (
	"testing"
)

func TestEventHasCapacity(t *testing.T) {
	capTen := 10
	capZero := 0
	capNegative := -1

	tests := []struct {
		name     string
		capacity *int
		want     bool
	}{
		{"nil means unlimited", nil, false},
		{"positive capacity", &capTen, true},
		{"zero capacity", &capZero, true},
		{"negative capacity is ignored", &capNegative, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &Event{Capacity: tt.capacity}
			if got := event.HasCapacity(); got != tt.want {
				t.Errorf("HasCapacity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultFormFields(t *testing.T) {
	fields := DefaultFormFields()

	if !fields.Name || !fields.Phone || !fields.Email {
		t.Errorf("Expected name, phone and email collected by default, got %+v", fields)
	}
	if fields.Company || fields.Dietary {
		t.Errorf("Expected company and dietary off by default, got %+v", fields)
	}
}

func TestGuestScrubbed(t *testing.T) {
	name := "Ada"
	tests := []struct {
		name  string
		guest Guest
		want  bool
	}{
		{"all fields present", Guest{Name: &name, Phone: &name, Email: &name}, false},
		{"one field remaining", Guest{Company: &name}, false},
		{"all fields nil", Guest{Package: "vip"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.guest.Scrubbed(); got != tt.want {
				t.Errorf("Scrubbed() = %v, want %v", got, tt.want)
			}
		})
	}
}
