package health

import (
	"net/http"
	"sync/atomic"
	"time"

	"inkboard/internal/infrastructure/json"
)

var (
	startTime = time.Now()
	draining  atomic.Bool
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// SetUnhealthy flips the health endpoints to 503 so load balancers stop
// routing here while the server drains.
func SetUnhealthy() {
	draining.Store(true)
}

// GetHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the relay, including uptime and current timestamp
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
	if draining.Load() {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	json.Write(w, code, healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	})
}
