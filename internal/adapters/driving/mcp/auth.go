package mcp

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/logger"
)

// requirePassword rejects requests whose bearer token is not password.
// Surrounding whitespace is ignored on both sides, as HTTP strips it
// from header values.
func requirePassword(password string, next http.Handler) http.Handler {
	want := []byte(strings.TrimSpace(password))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || subtle.ConstantTimeCompare([]byte(token), want) != 1 {
			logger.Warn("Rejected MCP request from %s: bad or missing password", r.RemoteAddr)
			w.Header().Set("WWW-Authenticate", `Bearer realm="shiori"`)
			http.Error(w, domain.ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// throttle answers 429 once the limiter's bucket is empty.
func throttle(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			logger.Debug("Throttled MCP request from %s", r.RemoteAddr)
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	const prefix = "bearer "

	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
