package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("POST", "/api/v1/track", "204"))

	ObserveRequest("POST", "/api/v1/track", 204, 3*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("POST", "/api/v1/track", "204"))
	if after-before != 1 {
		t.Errorf("request counter moved by %v, want 1", after-before)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	VisitsRecorded.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tracker_visits_recorded_total") {
		t.Error("visits counter missing from exposition")
	}
}
