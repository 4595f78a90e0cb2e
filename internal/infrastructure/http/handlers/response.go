// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/platebook/v1/internal/infrastructure/http/middleware"
	"github.com/platebook/v1/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// writeError maps application errors to HTTP status codes and a uniform
// error body. Unknown errors become opaque 500s.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var appErr *errors.AppError
	if e, ok := err.(*errors.AppError); ok {
		appErr = e
	} else {
		appErr = errors.NewInternalError("internal server error")
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("code", string(appErr.Code)), zap.Error(err))
	}

	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   errors.ToErrorResponse(appErr, middleware.RequestIDFromContext(r.Context())).Error,
	})
}

func writeValidationError(w http.ResponseWriter, r *http.Request, details string) {
	writeJSON(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   errors.ToErrorResponse(errors.NewValidationError(details), middleware.RequestIDFromContext(r.Context())).Error,
	})
}

// parseUUIDParam parses one chi URL parameter as a UUID
func parseUUIDParam(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
