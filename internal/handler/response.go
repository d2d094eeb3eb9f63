// Package handler implements the HTTP edge: request decoding, payload
// validation, and translation of domain errors into status codes.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/qna-service/internal/apperror"
)

// ErrorResponse is the single error shape every endpoint returns.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable kind, e.g. "validation_error"
	Message string `json:"message"` // human-readable, safe to show
}

// writeJSON sends a JSON response. Headers and status must be set before
// the first byte of the body goes out.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends the safe
// message. This is the only place error kinds meet status codes:
//
//	ErrValidation   → 400
//	ErrUnauthorized → 401
//	ErrNotFound     → 404
//	ErrConflict     → 409
//	everything else → 500 with a generic body
//
// The wrapped internal cause (SQL text, classifier transport errors) never
// reaches the client; callers log it before handing the error here.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		case errors.Is(err, apperror.ErrThirdParty):
			errorType = "third_party_error"
		case errors.Is(err, apperror.ErrStorage):
			errorType = "internal_error"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error — generic 500, no internal details across the boundary.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
