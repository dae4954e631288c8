package render

import (
	"encoding/json"
	"geomedia/internal/core/domain"
	"log/slog"
	"net/http"
)

// GenericErrorMessage is returned for every error that is not safe to expose
const GenericErrorMessage = "something went wrong"

// V1ErrorResponse is the body of every error response
type V1ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status
func JSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("error encoding response", "error", err)
	}
}

// ErrorMessage writes a JSON error with the given status
func ErrorMessage(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	JSON(w, logger, status, V1ErrorResponse{Error: message})
}

// Error maps a service error to its status code.
// Errors that are not public are logged and replaced with a generic message.
func Error(w http.ResponseWriter, logger *slog.Logger, err error, msg string) {
	status, message := StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, "error", err)
	}
	ErrorMessage(w, logger, status, message)
}

// StatusOf returns the HTTP status and the client message of err
func StatusOf(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case domain.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case domain.IsBusinessRule(err):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, GenericErrorMessage
	}
}

// DecodeJSON decodes the request body into v, rejecting unknown fields
func DecodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
