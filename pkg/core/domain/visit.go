package domain

import "time"

// TimestampLayout is the wire and storage format for visit timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Visit represents a single recorded page view
type Visit struct {
	ID        int64     `json:"id,omitempty"`
	IPAddress string    `json:"ip_address"`
	URL       string    `json:"url"`
	Domain    string    `json:"domain"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// NewVisit validates ip and rawURL and builds a Visit stamped with now.
func NewVisit(ip, rawURL string, now time.Time) (*Visit, error) {
	if !isValidIP(ip) {
		return nil, InvalidArgument("Invalid IP address: %s", ip)
	}

	page, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	return &Visit{
		IPAddress: ip,
		URL:       page.Raw,
		Domain:    page.Domain,
		Path:      page.Path,
		CreatedAt: now.UTC().Truncate(time.Second),
	}, nil
}

// PageAnalytics is the aggregate for one (domain, path) page within a filter scope
type PageAnalytics struct {
	URL          string    `json:"url"`
	Domain       string    `json:"domain"`
	Path         string    `json:"path"`
	UniqueVisits int64     `json:"unique_visits"`
	TotalVisits  int64     `json:"total_visits"`
	FirstVisit   Timestamp `json:"first_visit"`
	LastVisit    Timestamp `json:"last_visit"`
}

// UniqueRatio is the share of visits that came from distinct IPs.
func (p PageAnalytics) UniqueRatio() float64 {
	if p.TotalVisits == 0 {
		return 0
	}
	return float64(p.UniqueVisits) / float64(p.TotalVisits)
}

// DurationDays counts calendar days between the first and last visit, inclusive.
func (p PageAnalytics) DurationDays() int {
	first := time.Time(p.FirstVisit).Truncate(24 * time.Hour)
	last := time.Time(p.LastVisit).Truncate(24 * time.Hour)
	return int(last.Sub(first).Hours()/24) + 1
}

// Totals are the scalar aggregates across every visit in a filter scope.
type Totals struct {
	UniqueVisits int64 `json:"unique_visits"`
	TotalVisits  int64 `json:"total_visits"`
	Pages        int64 `json:"pages"`
}

// Timestamp marshals as TimestampLayout in UTC.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || len(s) < 2 {
		return nil
	}
	parsed, err := time.ParseInLocation(TimestampLayout, s[1:len(s)-1], time.UTC)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

func (t Timestamp) String() string {
	return time.Time(t).UTC().Format(TimestampLayout)
}
