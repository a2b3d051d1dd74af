package middleware

import (
	"context"
	"net/http"
	"strings"

	"datebot/internal/auth"
)

type contextKey string

const (
	clientIDKey    contextKey = "client_id"
	requestInfoKey contextKey = "request_info"
)

// requestInfo lets inner middleware report back to RequestLogger, which only
// sees the outer request.
type requestInfo struct {
	clientID string
}

func ClientIDFromContext(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(clientIDKey).(string)
	return val, ok && val != ""
}

// WithClientID stores an authenticated client id in ctx.
func WithClientID(ctx context.Context, clientID string) context.Context {
	if info, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		info.clientID = clientID
	}
	return context.WithValue(ctx, clientIDKey, clientID)
}

// ClientAuth requires a bearer client token signed with secret.
func ClientAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "missing Authorization")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				writeError(w, http.StatusUnauthorized, "invalid Authorization")
				return
			}
			claims, err := auth.ParseClientToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), claims.ClientID)))
		})
	}
}
