package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}

// parseQueryInt parses a positive integer query parameter with a default and
// an optional maximum (maxValue of 0 means unbounded). Malformed or
// non-positive values fall back to the default.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return defaultValue
	}
	if maxValue > 0 && v > maxValue {
		return maxValue
	}
	return v
}
