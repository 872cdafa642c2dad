package handler

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded first hop", "203.0.113.7, 10.0.0.1", "198.51.100.2", "127.0.0.1:5000", "203.0.113.7"},
		{"forwarded padded", "  203.0.113.8  ", "", "127.0.0.1:5000", "203.0.113.8"},
		{"forwarded ipv6", "2001:db8::1", "", "127.0.0.1:5000", "2001:db8::1"},
		{"bad forwarded falls to real ip", "unknown", "198.51.100.2", "127.0.0.1:5000", "198.51.100.2"},
		{"real ip", "", " 198.51.100.3 ", "127.0.0.1:5000", "198.51.100.3"},
		{"remote addr", "", "", "192.0.2.10:41234", "192.0.2.10"},
		{"remote addr ipv6", "", "", "[2001:db8::2]:443", "2001:db8::2"},
		{"remote addr without port", "", "", "192.0.2.11", "192.0.2.11"},
		{"nothing usable", "garbage", "also-garbage", "pipe", UnknownIP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/track", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
