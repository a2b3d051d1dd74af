package middleware

import (
	"encoding/json"
	"net/http"

	"datebot/internal/rate"
)

// RateLimit rejects requests with 429 once the caller's bucket is empty. The
// caller is the authenticated client when there is one, else the remote
// address (set by chi's RealIP).
func RateLimit(limiter *rate.KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + r.RemoteAddr
			if clientID, ok := ClientIDFromContext(r.Context()); ok {
				key = "client:" + clientID
			}
			if !limiter.Allow(key) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
