package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ticketresale/internal/domain"
)

// StatusClientClosedRequest is the nginx convention for a request the client abandoned.
const StatusClientClosedRequest = 499

// ErrorResponse is the body of every non-2xx response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is a body carrying only a human-readable message.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes an ErrorResponse with the given status and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message})
}

// WriteServiceError maps a service error onto a status code and message.
// fallback is the message used for storage failures, e.g. "Error fetching events".
// 5xx responses are logged; caller errors and client cancellations are not.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSONError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrReference):
		WriteJSONError(w, http.StatusUnprocessableEntity, "referenced event does not exist")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrOutcomeUnknown):
		logFailure(r, logger, err)
		WriteJSONError(w, http.StatusGatewayTimeout, "request timed out; the submission may or may not have been saved")
	case errors.Is(err, context.Canceled):
		logger.DebugContext(r.Context(), "request canceled by client", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, StatusClientClosedRequest, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		logFailure(r, logger, err)
		WriteJSONError(w, http.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, domain.ErrStorageUnavailable):
		logFailure(r, logger, err)
		WriteJSONError(w, http.StatusServiceUnavailable, fallback)
	default:
		logFailure(r, logger, err)
		WriteJSONError(w, http.StatusInternalServerError, fallback)
	}
}

func logFailure(r *http.Request, logger *slog.Logger, err error) {
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
