package dto

// CheckInRequest carries the raw decoded scan text. The engine treats it as
// an opaque string; any format mismatch is an invalid token, never a parse
// error with detail.
type CheckInRequest struct {
	Token string `json:"token" binding:"required"`
}

// CheckInResponse reports the outcome of a scan. FirstTime is true for
// exactly one scan per ticket regardless of how many doors scan it
// concurrently; repeat scans report the same guest with FirstTime=false.
type CheckInResponse struct {
	FirstTime   bool    `json:"first_time"`
	TicketID    string  `json:"ticket_id"`
	GuestName   *string `json:"guest_name,omitempty"`
	Package     string  `json:"package,omitempty"`
	CheckedInAt string  `json:"checked_in_at"`
}
