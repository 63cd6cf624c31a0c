package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"adventure-server/pkg/apperr"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status. Encoding failures are
// logged; headers are already sent at that point.
func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps any error through the apperr taxonomy to a status and
// a JSON error body.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := apperr.StatusOf(err)
	if status >= 500 {
		log.Error("Request failed", "error", err, "status", status)
	} else {
		log.Warn("Request rejected", "error", err, "status", status)
	}
	writeJSON(w, log, status, ErrorResponse{Error: apperr.MessageOf(err)})
}
