package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/garrettladley/ready/internal/server/handler"
	servermw "github.com/garrettladley/ready/internal/server/middleware"
	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/storage"
	"github.com/garrettladley/ready/internal/telemetry"
	"github.com/garrettladley/ready/internal/xhttp/middleware"
)

const metricsPath = "/metrics"

type Deps struct {
	Logger   *slog.Logger
	Tracker  tracker.Service
	Limiter  storage.RateLimiter
	Metrics  *telemetry.Metrics
	Registry *prometheus.Registry
	Checks   map[string]handler.Pinger
	Location *time.Location
}

// NewHandler wires every route and the middleware chain.
func NewHandler(d Deps) http.Handler {
	trackerHandler := handler.NewTracker(d.Tracker, d.Location)
	healthHandler := handler.NewHealth(d.Checks)

	apiMux := http.NewServeMux()
	handle := func(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, d.Metrics.Instrument(pattern, h))
	}

	handle(apiMux, "PUT /api/users/{userID}/assessments/{date}", trackerHandler.HandlePutAssessment)
	handle(apiMux, "GET /api/users/{userID}/assessments/{date}", trackerHandler.HandleGetAssessment)
	handle(apiMux, "POST /api/users/{userID}/sessions", trackerHandler.HandleCreateSession)
	handle(apiMux, "DELETE /api/users/{userID}/sessions/{sessionID}", trackerHandler.HandleDeleteSession)
	handle(apiMux, "GET /api/users/{userID}/summary", trackerHandler.HandleSummary)
	handle(apiMux, "GET /api/users/{userID}/history", trackerHandler.HandleHistory)
	handle(apiMux, "GET /api/users/{userID}/tasks", trackerHandler.HandleTasks)
	handle(apiMux, "POST /api/users/{userID}/tasks/{taskID}/complete", trackerHandler.HandleCompleteTask)
	handle(apiMux, "GET /api/metrics/catalogue", handler.HandleCatalogue)
	handle(apiMux, "POST /api/compute/recovery", handler.HandleComputeRecovery)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.Chain(apiMux,
		servermw.RateLimit(d.Limiter, d.Metrics.RateLimited.Inc),
	))
	handle(mux, "GET /health", healthHandler.HandleHealth)
	mux.Handle("GET "+metricsPath, telemetry.Handler(d.Registry))

	return middleware.Chain(mux,
		middleware.RecoveryFunc(d.Metrics.Panics.Inc),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Logging,
		middleware.SecurityHeaders,
		middleware.Gzip(metricsPath),
	)
}
