package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Diaconix/event-manager/internal/dto"
	"github.com/Diaconix/event-manager/internal/service"
	"github.com/Diaconix/event-manager/pkg/response"
)

// RetentionHandler exposes the retention sweep for operational use. The
// periodic worker is the normal driver; this endpoint exists so an operator
// can force a pass.
type RetentionHandler struct {
	retentionService service.RetentionService
}

// NewRetentionHandler creates a new RetentionHandler
func NewRetentionHandler(retentionService service.RetentionService) *RetentionHandler {
	return &RetentionHandler{retentionService: retentionService}
}

// Run executes one sweep over all due guests
// POST /api/v1/retention/run
func (h *RetentionHandler) Run(c *gin.Context) {
	count, err := h.retentionService.RunDueDeletions(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.RunDeletionsResponse{Scrubbed: count}))
}
