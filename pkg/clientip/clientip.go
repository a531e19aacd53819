package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the originating client IP for rate limiting.
// The API is deployed behind a managed proxy, so the first entry of
// X-Forwarded-For is preferred; RemoteAddr is the fallback for direct traffic.
func RealClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
