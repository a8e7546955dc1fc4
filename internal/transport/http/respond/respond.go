// Package respond centralizes JSON responses and the mapping from the
// service error taxonomy to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/storefront-labs/oms/internal/service/errs"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error maps a service error to an HTTP status and a structured body.
func Error(w http.ResponseWriter, err error) {
	var (
		validationErr  *errs.ValidationError
		notFoundErr    *errs.NotFoundError
		transitionErr  *errs.InvalidTransitionError
		cancellableErr *errs.NotCancellableError
		conflictErr    *errs.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		JSON(w, http.StatusBadRequest, errorBody{Error: validationErr.Error(), Field: validationErr.Field})
	case errors.As(err, &notFoundErr):
		JSON(w, http.StatusNotFound, errorBody{Error: notFoundErr.Error()})
	case errors.As(err, &transitionErr):
		JSON(w, http.StatusUnprocessableEntity, errorBody{Error: transitionErr.Error()})
	case errors.As(err, &cancellableErr):
		JSON(w, http.StatusUnprocessableEntity, errorBody{Error: cancellableErr.Error()})
	case errors.As(err, &conflictErr):
		JSON(w, http.StatusConflict, errorBody{Error: conflictErr.Error()})
	default:
		slog.Error("Unhandled service error", "error", err)
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// BadRequest reports a malformed request before it reaches the service.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
