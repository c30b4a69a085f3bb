package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"solana-token-api/internal/schema"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, ErrorResponse{Message: message})
}

func writeValidationError(w http.ResponseWriter, logger *zap.Logger, message string, verr *schema.ValidationError) {
	writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{Message: message, Errors: verr.Issues})
}
