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

// RegistrationHandler handles guest registration, the export listing and
// retention scheduling.
type RegistrationHandler struct {
	ticketService    service.TicketService
	retentionService service.RetentionService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(ticketService service.TicketService, retentionService service.RetentionService) *RegistrationHandler {
	return &RegistrationHandler{
		ticketService:    ticketService,
		retentionService: retentionService,
	}
}

// Register handles guest registration and ticket issuance. The token in the
// response is disclosed exactly once; the rendering collaborator turns it
// into a scannable image.
// POST /api/v1/events/:id/guests
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.RegisterGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.ticketService.Issue(c.Request.Context(), middleware.TenantID(c), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
		case errors.Is(err, service.ErrRegistrationClosed):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeRegistrationClosed, "Registration is closed for this event"))
		case errors.Is(err, service.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeCapacityExceeded, "Event capacity exceeded"))
		case errors.Is(err, service.ErrMissingRequiredField):
			c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, err.Error()))
		default:
			c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// ListGuests handles the read-only export listing
// GET /api/v1/events/:id/guests
func (h *RegistrationHandler) ListGuests(c *gin.Context) {
	result, err := h.ticketService.ListGuests(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ScheduleDeletion sets or moves a guest's retention deadline
// POST /api/v1/guests/:id/retention
func (h *RegistrationHandler) ScheduleDeletion(c *gin.Context) {
	var req dto.ScheduleDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	err := h.retentionService.ScheduleDeletion(c.Request.Context(), middleware.TenantID(c), c.Param("id"), req.Deadline)
	if err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Guest not found"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Deletion scheduled"}))
}
