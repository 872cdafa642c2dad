package handler

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/wadjakorntonsri/visit-tracker/pkg/config"
	"github.com/wadjakorntonsri/visit-tracker/pkg/logging"
	"github.com/wadjakorntonsri/visit-tracker/pkg/metrics"
)

type Middleware struct {
	cors      func(http.Handler) http.Handler
	rateLimit func(http.Handler) http.Handler
}

func NewMiddleware(cfg *config.Config) *Middleware {
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	m := &Middleware{
		cors: cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         cfg.CORSMaxAge,
			// Handlers answer preflight themselves with 204.
			OptionsPassthrough: true,
		}),
		rateLimit: func(next http.Handler) http.Handler { return next },
	}

	if cfg.TrackRateLimit > 0 {
		m.rateLimit = httprate.Limit(
			cfg.TrackRateLimit,
			time.Minute,
			httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
				return ClientIP(r), nil
			}),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				metrics.VisitsRejected.WithLabelValues("rate_limited").Inc()
				writeError(w, http.StatusTooManyRequests, "Too many requests")
			}),
		)
	}

	return m
}

func (m *Middleware) CORS(next http.Handler) http.Handler {
	return m.cors(next)
}

// RateLimit caps tracking requests per client IP per minute. Preflight
// requests pass straight through and do not count against the limit.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	limited := m.rateLimit(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

// AccessLog logs and measures every request. It must run inside RequestID.
func (m *Middleware) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		metrics.ObserveRequest(r.Method, routeLabel(r.URL.Path), status, elapsed)

		logging.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", elapsed).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

var knownRoutes = map[string]bool{
	"/api/v1/track":             true,
	"/api/v1/analytics":         true,
	"/api/v1/analytics/summary": true,
	"/api/v1/analytics/page":    true,
	"/healthz":                  true,
	"/tracker.js":               true,
	"/metrics":                  true,
}

// routeLabel keeps metric cardinality bounded.
func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}
