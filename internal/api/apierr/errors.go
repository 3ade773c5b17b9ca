package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/champguess/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeSessionNotActive   = "SESSION_NOT_ACTIVE"
	CodeAlreadyGuessed     = "ALREADY_GUESSED"
	CodeNoHintsLeft        = "NO_HINTS_LEFT"
	CodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	CodeChampionNotFound   = "CHAMPION_NOT_FOUND"
	CodeBuildNotFound      = "BUILD_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "No game in this channel"}}
	case errors.Is(err, model.ErrSessionNotActive):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotActive, "Game has already ended"}}
	case errors.Is(err, model.ErrAlreadyGuessed):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyGuessed, "That champion was already guessed"}}
	case errors.Is(err, model.ErrNoHintsLeft):
		return &httpError{http.StatusConflict, APIError{CodeNoHintsLeft, "No hints left for this game"}}
	case errors.Is(err, model.ErrCatalogUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCatalogUnavailable, "Champion catalog is unavailable"}}
	case errors.Is(err, model.ErrChampionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeChampionNotFound, "No champion matches that name"}}
	case errors.Is(err, model.ErrBuildNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBuildNotFound, err.Error()}}
	case errors.Is(err, model.ErrValidation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
