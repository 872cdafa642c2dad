package handler

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/wadjakorntonsri/visit-tracker/pkg/metrics"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
	"github.com/wadjakorntonsri/visit-tracker/pkg/validation"
)

const maxTrackBody = 16 << 10

type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// TrackRequest payload
type TrackRequest struct {
	URL string `json:"url" validate:"required"`
}

// Track records one page view for the calling client.
func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var req TrackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTrackBody)).Decode(&req); err != nil {
		metrics.VisitsRejected.WithLabelValues("invalid_json").Inc()
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if err := validation.Struct(req); err != nil {
		metrics.VisitsRejected.WithLabelValues("missing_url").Inc()
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	if err := h.service.RecordVisit(r.Context(), ClientIP(r), req.URL); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
