package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bryanwahyu/truthlens/internal/domain/kv"
)

// HealthChecker defines interface for health checking
type HealthChecker interface {
	Check(ctx context.Context) error
}

// KVHealthChecker pings the key-value backend.
type KVHealthChecker struct {
	Store kv.Store
}

func (k KVHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return k.Store.Ping(ctx)
}

// HealthStatus represents the health status
type HealthStatus struct {
	Status           string                 `json:"status"`
	Service          string                 `json:"service"`
	APIKeyConfigured bool                   `json:"apiKeyConfigured"`
	Provider         string                 `json:"provider,omitempty"`
	Timestamp        time.Time              `json:"timestamp"`
	Checks           map[string]CheckStatus `json:"checks,omitempty"`
}

// CheckStatus represents individual check status
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthInfo is the static part of the health answer.
type HealthInfo struct {
	Service          string
	APIKeyConfigured bool
	Provider         string
}

// HealthHandler answers "ok" with 200, or "unhealthy" with 503 when any
// checker fails.
func HealthHandler(info HealthInfo, checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := HealthStatus{
			Status:           "ok",
			Service:          info.Service,
			APIKeyConfigured: info.APIKeyConfigured,
			Provider:         info.Provider,
			Timestamp:        time.Now().UTC(),
			Checks:           make(map[string]CheckStatus, len(checkers)),
		}

		for name, checker := range checkers {
			if err := checker.Check(ctx); err != nil {
				health.Status = "unhealthy"
				health.Checks[name] = CheckStatus{Status: "unhealthy", Message: err.Error()}
			} else {
				health.Checks[name] = CheckStatus{Status: "healthy"}
			}
		}

		statusCode := http.StatusOK
		if health.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(health)
	}
}
