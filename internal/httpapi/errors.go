package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"matchahire/marketplace/internal/model"
	"matchahire/marketplace/internal/wizard"
)

// APIError is the envelope of every error response.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope, tagged with the request id.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// toHTTPStatus maps domain errors to a status and error code.
func toHTTPStatus(err error) (int, string) {
	var (
		ve  *model.ValidationError
		wve *wizard.ValidationError
	)
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, wizard.ErrSessionNotFound), errors.Is(err, wizard.ErrUnknownField):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, model.ErrConflict), errors.Is(err, wizard.ErrDone):
		return http.StatusConflict, "conflict"
	case errors.As(err, &wve):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.As(err, &ve), errors.Is(err, wizard.ErrWrongKind), errors.Is(err, wizard.ErrNotLastStep):
		return http.StatusBadRequest, "validation_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeDomainError logs unexpected failures and answers with the mapped status.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := toHTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "request_id", RequestIDFrom(r.Context()),
			"method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal server error"
	}
	WriteError(w, r, status, code, msg)
}
