package middleware

import (
	"encoding/json"
	"net/http"
)

// WriteError writes {"error": msg} with status. Every rejection in this
// package uses the same shape as the API handlers.
func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
