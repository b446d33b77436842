package health

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hilthontt/huddle/internal/infrastructure/json"
)

type Handler struct {
	startTime time.Time
	healthy   atomic.Bool
}

func NewHandler() *Handler {
	h := &Handler{startTime: time.Now()}
	h.healthy.Store(true)
	return h
}

// SetHealthy flips the reported status, e.g. to drain traffic during shutdown.
func (h *Handler) SetHealthy(healthy bool) {
	h.healthy.Store(healthy)
}

// GetHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API, including uptime and current timestamp
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is healthy"
// @Failure      503 {object} healthResponse "Service is unhealthy"
// @Router       /health [get]
// @Router       /healthz [get]
// @Router       /ready [get]
// @Router       /live [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if !h.healthy.Load() {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	json.Write(w, code, healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
