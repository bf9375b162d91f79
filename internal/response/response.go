// Package response writes the uniform JSON envelope used by every endpoint.
package response

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"admin-panel/internal/model"

	"github.com/rs/zerolog"
)

// Success is the envelope of every successful response.
type Success struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// Failure is the envelope of every failed response.
type Failure struct {
	StatusCode int                `json:"statusCode"`
	Message    string             `json:"message"`
	Error      string             `json:"error"`
	Code       string             `json:"code"`
	Details    []model.FieldError `json:"details"`
	Timestamp  string             `json:"timestamp"`
	RequestID  string             `json:"requestId,omitempty"`
}

// Confirmation is the payload of delete endpoints.
type Confirmation struct {
	Message string `json:"message"`
}

// now is replaced in tests.
var now = time.Now

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}

// OK wraps data in the success envelope.
func OK(w http.ResponseWriter, status int, messageKey string, data any) {
	WriteJSON(w, status, Success{
		StatusCode: status,
		Message:    Messages.Text(messageKey, http.StatusText(status)),
		Data:       data,
	})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindUnauthorised:
		return http.StatusUnauthorized
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	case model.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// statusName renders a status as e.g. "BAD_REQUEST".
func statusName(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// Error normalises err into the failure envelope. Errors that are not
// domain errors are reported as 500 without leaking their text.
func Error(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	de, ok := model.AsDomainError(err)
	if !ok {
		de = model.NewDomainError(model.KindUnexpected, model.ErrCodeInternalError, Messages.Text(MsgInternal, "Internal server error"))
	}

	status := StatusFor(de.Kind)
	message := de.Message
	switch de.Kind {
	case model.KindValidation:
		if de.Code == model.ErrCodeValidation {
			message = Messages.Text(MsgValidation, message)
		}
	case model.KindUnavailable:
		message = Messages.Text(MsgStoreDown, message)
	}

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Str("code", de.Code).
		Str("request_id", RequestID(r.Context())).
		Msg("request failed")

	WriteJSON(w, status, Failure{
		StatusCode: status,
		Message:    message,
		Error:      statusName(status),
		Code:       de.Code,
		Details:    de.Details,
		Timestamp:  now().UTC().Format(time.RFC3339),
		RequestID:  RequestID(r.Context()),
	})
}
