package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/handler"
	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/visit-tracker/pkg/config"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/visit-tracker/pkg/logging"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Note: On Vercel, a local sqlite file is ephemeral; use a Turso or postgres DATABASE_URL
	repo, err := repository.Open(cfg)
	if err != nil {
		panic(err)
	}

	mux = handler.NewRouter(cfg, services.NewTrackingService(repo), services.NewAnalyticsService(repo))
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
