package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/service"
)

type sessionSnapshotter interface {
	Snapshot() models.SessionSnapshot
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics  *service.MetricsService
	sessions sessionSnapshotter
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, sessions sessionSnapshotter) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, sessions: sessions}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports 503 until the session store has finished restoring.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.sessions != nil && h.sessions.Snapshot().State == models.SessionLoading {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": string(models.SessionLoading)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
