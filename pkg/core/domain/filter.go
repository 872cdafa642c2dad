package domain

import (
	"strings"
	"time"
)

var (
	// OpenRangeStart bounds a filter that only names an end date.
	OpenRangeStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	// OpenRangeEnd bounds a filter that only names a start date.
	OpenRangeEnd = time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC)
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	TimestampLayout,
	"2006-01-02",
}

// DateRange is an inclusive [Start, End] interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange rejects ranges that end before they start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, InvalidArgument("Start date must be before or equal to end date")
	}
	return DateRange{Start: start.UTC(), End: end.UTC()}, nil
}

// LastDays covers the n calendar days ending today, whole days inclusive.
func LastDays(n int, now time.Time) (DateRange, error) {
	if n < 1 {
		return DateRange{}, InvalidArgument("Days must be at least 1")
	}
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	start := time.Date(now.Year(), now.Month(), now.Day()-(n-1), 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: end}, nil
}

// CurrentMonth covers the calendar month containing now.
func CurrentMonth(now time.Time) DateRange {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return DateRange{Start: start, End: end}
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days is the number of calendar days the range touches.
func (r DateRange) Days() int {
	start := r.Start.Truncate(24 * time.Hour)
	end := r.End.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}

// AnalyticsFilter narrows aggregation by visit date and exact domain.
// The zero value matches everything.
type AnalyticsFilter struct {
	dateRange *DateRange
	domain    string
}

// NewFilter builds a filter; a blank domain means no domain filter.
func NewFilter(dateRange *DateRange, domain string) AnalyticsFilter {
	f := AnalyticsFilter{domain: strings.TrimSpace(domain)}
	if dateRange != nil {
		r := *dateRange
		f.dateRange = &r
	}
	return f
}

// BuildFilter turns raw query parameters into a filter. It never fails:
// unparseable or inverted dates drop the date predicate. A lone start or end
// date is paired with OpenRangeEnd or OpenRangeStart.
func BuildFilter(startDate, endDate, domain string) AnalyticsFilter {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)

	var dateRange *DateRange
	switch {
	case startDate != "" && endDate != "":
		start, okStart := parseDate(startDate, false)
		end, okEnd := parseDate(endDate, true)
		if okStart && okEnd {
			if r, err := NewDateRange(start, end); err == nil {
				dateRange = &r
			}
		}
	case startDate != "":
		if start, ok := parseDate(startDate, false); ok {
			if r, err := NewDateRange(start, OpenRangeEnd); err == nil {
				dateRange = &r
			}
		}
	case endDate != "":
		if end, ok := parseDate(endDate, true); ok {
			if r, err := NewDateRange(OpenRangeStart, end); err == nil {
				dateRange = &r
			}
		}
	}

	return NewFilter(dateRange, domain)
}

// parseDate accepts the layouts in dateLayouts. A bare date used as an end
// bound extends to the last second of that day.
func parseDate(s string, endOfDay bool) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" && endOfDay {
			t = t.Add(24*time.Hour - time.Second)
		}
		return t.UTC(), true
	}
	return time.Time{}, false
}

// DateRange returns the date predicate, or nil when there is none.
func (f AnalyticsFilter) DateRange() *DateRange {
	if f.dateRange == nil {
		return nil
	}
	r := *f.dateRange
	return &r
}

func (f AnalyticsFilter) Domain() string { return f.domain }

func (f AnalyticsFilter) HasDateFilter() bool { return f.dateRange != nil }

func (f AnalyticsFilter) HasDomainFilter() bool { return f.domain != "" }

func (f AnalyticsFilter) HasAnyFilter() bool {
	return f.HasDateFilter() || f.HasDomainFilter()
}

func (f AnalyticsFilter) WithDateRange(r DateRange) AnalyticsFilter {
	return NewFilter(&r, f.domain)
}

func (f AnalyticsFilter) WithDomain(domain string) AnalyticsFilter {
	return NewFilter(f.dateRange, domain)
}

func (f AnalyticsFilter) WithoutDateRange() AnalyticsFilter {
	return NewFilter(nil, f.domain)
}

func (f AnalyticsFilter) WithoutDomain() AnalyticsFilter {
	return NewFilter(f.dateRange, "")
}

// Matches applies the filter to a single visit.
func (f AnalyticsFilter) Matches(v Visit) bool {
	if f.dateRange != nil && !f.dateRange.Contains(v.CreatedAt) {
		return false
	}
	if f.domain != "" && v.Domain != f.domain {
		return false
	}
	return true
}
