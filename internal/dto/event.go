package dto

import "time"

// CreateEventRequest represents a request to create an event under a tenant
type CreateEventRequest struct {
	Title       string      `json:"title" binding:"required,min=1,max=255"`
	Description string      `json:"description" binding:"omitempty,max=2000"`
	StartsAt    *time.Time  `json:"starts_at" binding:"omitempty"`
	Capacity    *int        `json:"capacity" binding:"omitempty"`
	FormFields  *FormFields `json:"form_fields" binding:"omitempty"`
}

// Validate validates fields binding tags cannot express
func (r *CreateEventRequest) Validate() (bool, string) {
	if r.Capacity != nil && *r.Capacity < 0 {
		return false, "Capacity must be zero or positive"
	}
	return true, ""
}

// FormFields mirrors the per-event registration form configuration
type FormFields struct {
	Name    bool `json:"name"`
	Phone   bool `json:"phone"`
	Email   bool `json:"email"`
	Company bool `json:"company"`
	Dietary bool `json:"dietary"`
}

// EventResponse represents event data in responses
type EventResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Open        bool       `json:"open"`
	FormFields  FormFields `json:"form_fields"`
	CreatedAt   string     `json:"created_at"`
}

// EventStatsResponse represents per-event aggregate counts
type EventStatsResponse struct {
	EventID    string `json:"event_id"`
	Registered int    `json:"registered"`
	CheckedIn  int    `json:"checked_in"`
}
