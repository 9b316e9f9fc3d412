package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/trucklog/backend/internal/domain"
)

// errorResponse is the JSON body for every error the API returns.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError maps a domain error to its HTTP status and writes the JSON body.
// Anything that is not a known sentinel is a storage or programming failure:
// it is logged and surfaced as a bare 500 so internals never leak to callers.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: userMessage(err)})
	case errors.Is(err, domain.ErrConflict):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Username already exists"})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// badRequest writes a 400 for input rejected before reaching the service
// layer (e.g. malformed JSON, unparseable id or date).
func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// userMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.EntryService.Create: validation error: truckNo is required"
// → "truckNo is required".
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}
