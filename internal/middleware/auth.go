package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type contextKey string

const (
	ClientKey contextKey = "client"
	APIKeyKey contextKey = "api_key"
)

// AnonymousClient is the client name used when no keys are configured.
const AnonymousClient = "anonymous"

// APIKeyAuth validates the bearer token against validKeys (client name ->
// key). With no keys configured any non-empty token is accepted, which
// keeps local runs usable without a key file.
func APIKeyAuth(validKeys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				WriteError(w, http.StatusUnauthorized, "Missing authorization header")
				return
			}

			// Support both "Bearer <key>" and "<key>" formats
			apiKey := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if apiKey == "" {
				WriteError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			client, ok := matchKey(validKeys, apiKey)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}

			ctx := context.WithValue(r.Context(), ClientKey, client)
			ctx = context.WithValue(ctx, APIKeyKey, apiKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func matchKey(validKeys map[string]string, apiKey string) (string, bool) {
	if len(validKeys) == 0 {
		return AnonymousClient, true
	}
	// constant-time per key; every key is compared
	client, ok := "", false
	for name, key := range validKeys {
		if key == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
			client, ok = name, true
		}
	}
	return client, ok
}

// GetClientFromContext returns the authenticated client name.
func GetClientFromContext(ctx context.Context) string {
	if c, ok := ctx.Value(ClientKey).(string); ok {
		return c
	}
	return ""
}
