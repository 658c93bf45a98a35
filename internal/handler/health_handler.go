package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	engine string
}

// NewHealthHandler creates a new HealthHandler. engine names the configured
// generation path and is reported by Readiness.
func NewHealthHandler(engine string) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// Liveness handles GET /healthz and GET /api/v1/health
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz. The service holds no connections, so it is
// ready as soon as it serves; the fallback covers a missing generator.
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Engine: h.engine})
}

// Root handles GET / with an empty response.
func (h *HealthHandler) Root(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
