package sqlstore

import (
	"fmt"
	"time"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(domain.TimestampLayout)
}

var timeLayouts = []string{
	domain.TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05",
}

// dbTime scans timestamps that arrive as time.Time (postgres, typed sqlite
// columns) or as TimestampLayout text (sqlite aggregates).
type dbTime time.Time

func (t *dbTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = dbTime(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t = dbTime(time.Time{})
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = dbTime(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}
