package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/wadjakorntonsri/visit-tracker/pkg/validation"
)

// UnknownIP is recorded when no usable client address can be found.
const UnknownIP = "0.0.0.0"

// ClientIP returns the visitor address: the first X-Forwarded-For hop, then
// X-Real-IP, then the connection peer. Headers are trusted as sent.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); validation.IsIP(ip) {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); validation.IsIP(ip) {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if validation.IsIP(host) {
		return host
	}
	return UnknownIP
}
