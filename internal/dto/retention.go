package dto

import "time"

// ScheduleDeletionRequest sets or moves a guest's retention deadline
type ScheduleDeletionRequest struct {
	Deadline time.Time `json:"deadline" binding:"required"`
}

// RunDeletionsResponse reports how many guests were scrubbed by a sweep
type RunDeletionsResponse struct {
	Scrubbed int `json:"scrubbed"`
}
