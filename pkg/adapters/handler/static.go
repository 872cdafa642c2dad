package handler

import (
	"bytes"
	_ "embed"
	"net/http"
	"text/template"
	"time"

	"github.com/wadjakorntonsri/visit-tracker/pkg/logging"
)

// Version is reported by the health endpoint; set with -ldflags at build time.
var Version = "1.0.0"

const serviceName = "visit-tracker"

//go:embed static/tracker.js
var trackerSource string

var trackerTemplate = template.Must(template.New("tracker.js").Parse(trackerSource))

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
}

// Health reports liveness. It does not touch storage.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Version:   Version,
		Timestamp: time.Now().Unix(),
	})
}

// TrackerScript serves the embedded snippet pointed at baseURL.
func TrackerScript(baseURL string) http.Handler {
	var buf bytes.Buffer
	err := trackerTemplate.Execute(&buf, struct {
		Endpoint  string
		ScriptURL string
	}{
		Endpoint:  baseURL + "/api/v1/track",
		ScriptURL: baseURL + "/tracker.js",
	})
	if err != nil {
		logging.Error().Err(err).Msg("failed to render tracker.js")
	}
	body := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(body)
	})
}
