package utils

import (
	"net/http"
	"strings"
)

// ParseRemoteAddr resolves the client address of a request, preferring
// proxy headers over the socket peer address.
func ParseRemoteAddr(r *http.Request) string {
	for _, header := range []string{"X-Forwarded-For", "X-Real-IP"} {
		if addr := r.Header.Get(header); len(addr) > 0 {
			return strings.TrimSpace(strings.Split(addr, ",")[0])
		}
	}
	return r.RemoteAddr
}
