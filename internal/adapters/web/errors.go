package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"invoice-desk/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps application errors onto the HTTP error taxonomy:
// missing owner is 401, missing rows are 404, schema drift gets its own
// code so the client can show an actionable message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var schemaErr *core.SchemaError
	switch {
	case errors.Is(err, core.ErrNotAuthenticated):
		writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.As(err, &schemaErr):
		writeError(w, r, schemaErr.Error(), "SCHEMA_MISMATCH", http.StatusInternalServerError)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
