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

// EventHandler handles tenant-scoped event HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles event creation
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.eventService.Create(c.Request.Context(), middleware.TenantID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// Get handles retrieving a single event
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	result, err := h.eventService.Get(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
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

// List handles listing the tenant's events
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	result, err := h.eventService.List(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// CloseRegistration handles closing an event's registration
// POST /api/v1/events/:id/close
func (h *EventHandler) CloseRegistration(c *gin.Context) {
	err := h.eventService.CloseRegistration(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Registration closed"}))
}

// Stats handles the organizer dashboard counts
// GET /api/v1/events/:id/stats
func (h *EventHandler) Stats(c *gin.Context) {
	result, err := h.eventService.Stats(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
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
