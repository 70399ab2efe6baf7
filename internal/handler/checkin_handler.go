package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diaconix/event-manager/internal/dto"
	"github.com/Diaconix/event-manager/internal/service"
	"github.com/Diaconix/event-manager/pkg/middleware"
	"github.com/Diaconix/event-manager/pkg/response"
)

// CheckInHandler handles door scan HTTP requests
type CheckInHandler struct {
	checkInService service.CheckInService
}

// NewCheckInHandler creates a new CheckInHandler
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// CheckIn handles a scanned token. An unknown token, a malformed scan and a
// token minted under another tenant all produce the same response, so the
// door cannot be used to probe for other tenants' tickets.
// POST /api/v1/checkin
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.checkInService.CheckIn(c.Request.Context(), middleware.TenantID(c), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusNotFound, response.Error(response.ErrCodeInvalidToken, "Invalid ticket token"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
