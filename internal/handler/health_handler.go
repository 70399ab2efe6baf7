package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diaconix/event-manager/pkg/database"
	"github.com/Diaconix/event-manager/pkg/response"
)

// HealthHandler reports process and storage health
type HealthHandler struct {
	db *database.PostgresDB
}

// NewHealthHandler creates a new HealthHandler. db may be nil when the
// service runs against the in-memory store.
func NewHealthHandler(db *database.PostgresDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles liveness checks
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}

// Ready handles readiness checks, verifying storage connectivity
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable("database unreachable"))
			return
		}
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ready"}))
}
