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

// TenantHandler handles tenant registry HTTP requests
type TenantHandler struct {
	tenantService service.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create handles tenant registration
// POST /api/v1/tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.tenantService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrTenantNameTaken) {
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeDuplicateEntry, "Tenant with this name already exists"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// Resolve handles retrieving the caller's own tenant
// GET /api/v1/tenant
func (h *TenantHandler) Resolve(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	result, err := h.tenantService.Resolve(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
