package web

import (
	"encoding/json"
	"net/http"

	"github.com/toeirei/sgpi/internal/logging"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("web: failed to encode response: %v", err)
	}
}

// writeError sends a localized message; the underlying cause stays in the log.
func writeError(w http.ResponseWriter, status int, message string, cause error) {
	if cause != nil {
		logging.Errorf("web: request failed (status %d): %v", status, cause)
	}
	writeJSON(w, status, errorResponse{Message: message})
}
