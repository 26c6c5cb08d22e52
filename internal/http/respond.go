package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inflation/internal/core"
	applog "inflation/internal/log"
	"inflation/internal/middleware/trace"
)

type (
	errorBody struct {
		Message string `json:"message"`
		Details string `json:"details,omitempty"`
	}

	errorResponse struct {
		Error errorBody `json:"error"`
	}
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses:
// InvalidYear→400, DataNotFound→404, Calculation→422, anything else→500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidYear):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrDataNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrCalculation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrDataLoad):
		// Data source trouble is not the caller's fault.
		status = http.StatusInternalServerError
	}

	body := errorBody{Message: "Internal server error"}
	var svcErr *core.Error
	if errors.As(err, &svcErr) {
		body.Message = svcErr.Message
		body.Details = svcErr.Details
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			applog.FieldRequestID, trace.GetRequestID(r.Context()),
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
	}
	writeJSON(w, status, errorResponse{Error: body})
}

// writeBadRequest reports a request-parsing failure.
func writeBadRequest(w http.ResponseWriter, message, details string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Message: message, Details: details}})
}
