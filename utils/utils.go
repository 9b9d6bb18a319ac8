package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// RespondWithJSON writes a JSON response body with the given status.
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError writes the standard error body shape.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"message": msg})
}

// ParseLimit reads an integer query parameter, falling back to def when
// absent or invalid and clamping to max.
func ParseLimit(r *http.Request, name string, def, max int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

type M map[string]interface{}
