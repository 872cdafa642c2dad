package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestBuildFilterDates(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantRange *DateRange
	}{
		{
			name:      "both bounds",
			start:     "2024-01-01",
			end:       "2024-01-31",
			wantRange: &DateRange{Start: date(2024, 1, 1, 0, 0, 0), End: date(2024, 1, 31, 23, 59, 59)},
		},
		{
			name:      "both bounds with time",
			start:     "2024-01-01 08:00:00",
			end:       "2024-01-01 18:30:00",
			wantRange: &DateRange{Start: date(2024, 1, 1, 8, 0, 0), End: date(2024, 1, 1, 18, 30, 0)},
		},
		{
			name:      "rfc3339",
			start:     "2024-03-01T00:00:00Z",
			end:       "2024-03-02T12:00:00Z",
			wantRange: &DateRange{Start: date(2024, 3, 1, 0, 0, 0), End: date(2024, 3, 2, 12, 0, 0)},
		},
		{
			name:      "start only",
			start:     "2024-06-15",
			wantRange: &DateRange{Start: date(2024, 6, 15, 0, 0, 0), End: OpenRangeEnd},
		},
		{
			name:      "end only",
			end:       "2024-06-15",
			wantRange: &DateRange{Start: OpenRangeStart, End: date(2024, 6, 15, 23, 59, 59)},
		},
		{name: "none", wantRange: nil},
		{name: "blank", start: "   ", end: "\t", wantRange: nil},
		{name: "malformed start", start: "yesterday", end: "2024-01-31", wantRange: nil},
		{name: "malformed end", start: "2024-01-01", end: "31/01/2024", wantRange: nil},
		{name: "inverted", start: "2024-02-01", end: "2024-01-01", wantRange: nil},
		{name: "malformed start only", start: "garbage", wantRange: nil},
		{name: "end only before open start", end: "2019-05-01", wantRange: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := BuildFilter(tt.start, tt.end, "")
			got := f.DateRange()

			if tt.wantRange == nil {
				if got != nil {
					t.Fatalf("expected no date filter, got %+v", *got)
				}
				if f.HasDateFilter() {
					t.Error("HasDateFilter() = true, want false")
				}
				return
			}

			if got == nil {
				t.Fatal("expected a date filter, got none")
			}
			if !got.Start.Equal(tt.wantRange.Start) || !got.End.Equal(tt.wantRange.End) {
				t.Errorf("range = [%s, %s], want [%s, %s]", got.Start, got.End, tt.wantRange.Start, tt.wantRange.End)
			}
			if !f.HasDateFilter() || !f.HasAnyFilter() {
				t.Error("expected HasDateFilter and HasAnyFilter to be true")
			}
		})
	}
}

func TestBuildFilterDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantHas bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"example.com", "example.com", true},
		{"  example.com  ", "example.com", true},
		{"Example.com", "Example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f := BuildFilter("", "", tt.in)
			if f.Domain() != tt.want {
				t.Errorf("Domain() = %q, want %q", f.Domain(), tt.want)
			}
			if f.HasDomainFilter() != tt.wantHas {
				t.Errorf("HasDomainFilter() = %v, want %v", f.HasDomainFilter(), tt.wantHas)
			}
		})
	}
}

func TestFilterIsImmutable(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 1, 0, 0, 0), End: date(2024, 1, 2, 0, 0, 0)}
	f := NewFilter(&r, "example.com")

	r.End = date(2030, 1, 1, 0, 0, 0)
	if f.DateRange().End.Year() != 2024 {
		t.Error("filter shares the caller's DateRange")
	}

	got := f.DateRange()
	got.Start = date(1999, 1, 1, 0, 0, 0)
	if f.DateRange().Start.Year() != 2024 {
		t.Error("DateRange() exposes internal state")
	}

	g := f.WithoutDomain()
	if !f.HasDomainFilter() || g.HasDomainFilter() {
		t.Error("WithoutDomain mutated the receiver or did not clear the domain")
	}
	h := f.WithoutDateRange().WithDomain("other.com")
	if h.HasDateFilter() || h.Domain() != "other.com" || f.Domain() != "example.com" {
		t.Errorf("unexpected derived filter %+v", h)
	}
	if !(AnalyticsFilter{}).WithDateRange(r).HasDateFilter() {
		t.Error("WithDateRange did not set a range")
	}
}

func TestFilterMatches(t *testing.T) {
	f := BuildFilter("2024-01-01", "2024-01-31", "example.com")

	tests := []struct {
		name  string
		visit Visit
		want  bool
	}{
		{"inside", Visit{Domain: "example.com", CreatedAt: date(2024, 1, 15, 12, 0, 0)}, true},
		{"start boundary", Visit{Domain: "example.com", CreatedAt: date(2024, 1, 1, 0, 0, 0)}, true},
		{"end boundary", Visit{Domain: "example.com", CreatedAt: date(2024, 1, 31, 23, 59, 59)}, true},
		{"after", Visit{Domain: "example.com", CreatedAt: date(2024, 2, 1, 0, 0, 0)}, false},
		{"other domain", Visit{Domain: "blog.example.com", CreatedAt: date(2024, 1, 15, 0, 0, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Matches(tt.visit); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	if !(AnalyticsFilter{}).Matches(Visit{Domain: "any"}) {
		t.Error("zero filter should match everything")
	}
}

func TestDateRangeHelpers(t *testing.T) {
	if _, err := NewDateRange(date(2024, 2, 1, 0, 0, 0), date(2024, 1, 1, 0, 0, 0)); !IsInvalidArgument(err) {
		t.Errorf("expected invalid argument for inverted range, got %v", err)
	}

	now := date(2024, 3, 10, 15, 4, 5)
	week, err := LastDays(7, now)
	if err != nil {
		t.Fatal(err)
	}
	if !week.Start.Equal(date(2024, 3, 4, 0, 0, 0)) || !week.End.Equal(date(2024, 3, 10, 23, 59, 59)) {
		t.Errorf("LastDays(7) = [%s, %s]", week.Start, week.End)
	}
	if week.Days() != 7 {
		t.Errorf("Days() = %d, want 7", week.Days())
	}
	if _, err := LastDays(0, now); err == nil {
		t.Error("LastDays(0) should fail")
	}

	month := CurrentMonth(now)
	if !month.Start.Equal(date(2024, 3, 1, 0, 0, 0)) || !month.End.Equal(date(2024, 3, 31, 23, 59, 59)) {
		t.Errorf("CurrentMonth = [%s, %s]", month.Start, month.End)
	}
	if !month.Contains(now) || month.Contains(date(2024, 4, 1, 0, 0, 0)) {
		t.Error("Contains gave wrong answer")
	}
}
