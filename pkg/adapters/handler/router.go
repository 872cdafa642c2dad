package handler

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/wadjakorntonsri/visit-tracker/pkg/config"
	"github.com/wadjakorntonsri/visit-tracker/pkg/metrics"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, tracking ports.TrackingService, analytics ports.AnalyticsService) http.Handler {
	// Initialize Handlers
	th := NewTrackingHandler(tracking)
	ah := NewAnalyticsHandler(analytics)

	// Initialize Middleware
	mw := NewMiddleware(cfg)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", Health)
	mux.Handle("GET /tracker.js", TrackerScript(cfg.BaseURL))
	mux.Handle("GET /metrics", metrics.Handler())

	// API Routes. Registered without a method so OPTIONS and 405 are
	// answered by the handlers with the JSON error body.
	mux.Handle("/api/v1/track", mw.RateLimit(http.HandlerFunc(th.Track)))
	mux.HandleFunc("/api/v1/analytics", ah.List)
	mux.HandleFunc("/api/v1/analytics/summary", ah.Summary)
	mux.HandleFunc("/api/v1/analytics/page", ah.Page)

	var h http.Handler = mux
	h = mw.CORS(h)
	h = mw.AccessLog(h)
	h = chimw.Recoverer(h)
	h = chimw.RequestID(h)
	return h
}
