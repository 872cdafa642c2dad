package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/visit-tracker/pkg/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps invalid arguments to 400 with their message. Anything
// else is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *domain.InvalidArgumentError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, invalid.Message)
		return
	}

	logging.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// allowMethods answers OPTIONS with 204 and rejects anything outside allowed
// with 405. It reports whether the caller should go on serving the request.
func allowMethods(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return false
	}
	for _, m := range allowed {
		if r.Method == m {
			return true
		}
	}

	w.Header().Set("Allow", strings.Join(append(allowed, http.MethodOptions), ", "))
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}
