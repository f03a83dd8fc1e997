package handler

import (
	"context"
	"net/http"

	"github.com/garrettladley/ready/internal/metric"
	"github.com/garrettladley/ready/internal/recovery"
	"github.com/garrettladley/ready/internal/xhttp"
)

// HandleCatalogue handles GET /api/metrics/catalogue.
func HandleCatalogue(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, metric.Catalogue())
}

type recoveryResponse struct {
	recovery.Result
	Penalties recovery.Penalties `json:"penalties"`
}

// HandleComputeRecovery handles POST /api/compute/recovery. It runs the
// sleep and recovery model on the posted inputs without touching storage.
func HandleComputeRecovery(w http.ResponseWriter, r *http.Request) {
	var in recovery.Inputs
	if err := xhttp.DecodeJSON(w, r, &in); err != nil {
		writeError(r.Context(), w, invalidBody(err))
		return
	}

	xhttp.WriteOK(w, recoveryResponse{
		Result:    recovery.Compute(in),
		Penalties: recovery.ComputePenalties(in),
	})
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health reports the state of the server's dependencies.
type Health struct {
	checks map[string]Pinger
}

func NewHealth(checks map[string]Pinger) *Health {
	return &Health{checks: checks}
}

// HandleHealth handles GET /health.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for name, p := range h.checks {
		if err := p.Ping(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "ok" {
		xhttp.SetHeaderNoStore(w)
		xhttp.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	xhttp.SetHeaderNoStore(w)
	xhttp.WriteOK(w, resp)
}

