package handler

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/pagination"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// AnalyticsResponse is one page of per-page aggregates.
type AnalyticsResponse struct {
	Data       []domain.PageAnalytics `json:"data"`
	Pagination pagination.Pagination  `json:"pagination"`
}

// List serves GET /api/v1/analytics.
func (h *AnalyticsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	page := queryInt(q, "page", 1)
	limit := queryInt(q, "limit", pagination.DefaultLimit)

	items, meta, err := h.service.GetPageAnalytics(r.Context(), filterFromQuery(q), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyticsResponse{Data: items, Pagination: meta})
}

// Summary serves GET /api/v1/analytics/summary.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	summary, err := h.service.GetSummary(r.Context(), filterFromQuery(q), queryInt(q, "top", services.DefaultTopDomains))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Page serves GET /api/v1/analytics/page?url=...
func (h *AnalyticsHandler) Page(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	pageURL := strings.TrimSpace(q.Get("url"))

	page, err := h.service.GetPageAnalyticsByURL(r.Context(), pageURL, filterFromQuery(q))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, "No visits found for URL")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func filterFromQuery(q url.Values) domain.AnalyticsFilter {
	return domain.BuildFilter(q.Get("start_date"), q.Get("end_date"), q.Get("domain"))
}

// leadingNumber matches the numeric prefix of a query value, so "5abc"
// reads as 5 and "1.5" as 1.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// queryInt returns fallback for an absent parameter. Otherwise it reads the
// value's numeric prefix truncated toward zero, saturating at the int range.
// A value with no numeric prefix reads as 0 so range validation rejects it.
func queryInt(q url.Values, key string, fallback int) int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback
	}
	num := leadingNumber.FindString(raw)
	if num == "" {
		return 0
	}

	if !strings.ContainsAny(num, ".eE") {
		n, err := strconv.ParseInt(num, 10, strconv.IntSize)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0
		}
		// ParseInt returns the saturated bound alongside ErrRange.
		return int(n)
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}
