package domain

import (
	"net/url"
	"strings"

	"github.com/wadjakorntonsri/visit-tracker/pkg/validation"
)

// MaxURLLength is the longest page URL accepted for tracking.
const MaxURLLength = 2048

// PageURL is a validated page URL split into its grouping components.
type PageURL struct {
	Raw    string
	Domain string
	Path   string
}

// ParseURL validates raw and extracts its domain and path. The path is kept
// as supplied, including its query string, and defaults to "/".
func ParseURL(raw string) (PageURL, error) {
	raw = strings.TrimSpace(raw)

	if len(raw) > MaxURLLength {
		return PageURL{}, InvalidArgument("URL too long (max %d characters)", MaxURLLength)
	}
	if !validation.IsURL(raw) {
		return PageURL{}, InvalidArgument("Invalid URL: %s", raw)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return PageURL{}, InvalidArgument("Invalid URL: %s", raw)
	}

	path := suppliedPath(raw)
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return PageURL{
		Raw:    raw,
		Domain: u.Hostname(),
		Path:   path,
	}, nil
}

// suppliedPath returns the path of raw exactly as written, without the
// re-escaping url.URL.EscapedPath applies to non-ASCII characters.
func suppliedPath(raw string) string {
	s, _, _ := strings.Cut(raw, "#")
	s, _, _ = strings.Cut(s, "?")
	if _, authority, ok := strings.Cut(s, "//"); ok {
		s = authority
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[i:]
	}
	return ""
}

func isValidIP(ip string) bool {
	return validation.IsIP(ip)
}
