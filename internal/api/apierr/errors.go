package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gameontext/gameon-player/internal/model"
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

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeAmbiguousCredential = "AMBIGUOUS_CREDENTIAL"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeForbidden           = "FORBIDDEN"
	CodeWrongAudience       = "WRONG_AUDIENCE"
	CodeSecretRevoked       = "SECRET_REVOKED"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodePlayerExists        = "PLAYER_EXISTS"
	CodeRevisionConflict    = "REVISION_CONFLICT"
	CodeLocationConflict    = "LOCATION_CONFLICT"
	CodeInternalError       = "INTERNAL_ERROR"
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

// toHTTPError converts an error to an httpError. Internal errors get a
// generic message so nothing about storage state reaches the caller.
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidPlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrAmbiguousCredential):
		return &httpError{http.StatusBadRequest, APIError{CodeAmbiguousCredential, "Credential supplied more than once"}}

	// Authentication and authorization
	case errors.Is(err, model.ErrUnauthenticated):
		return &httpError{http.StatusForbidden, APIError{CodeUnauthenticated, "A valid identity token is required"}}
	case errors.Is(err, model.ErrWrongAudience):
		return &httpError{http.StatusForbidden, APIError{CodeWrongAudience, "Operation not allowed for this token audience"}}
	case errors.Is(err, model.ErrSecretRevoked):
		return &httpError{http.StatusForbidden, APIError{CodeSecretRevoked, "Shared secret use is banned for this player"}}
	case errors.Is(err, model.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Not allowed to act on this player"}}

	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, "Player already exists"}}
	case errors.Is(err, model.ErrRevisionConflict):
		return &httpError{http.StatusConflict, APIError{CodeRevisionConflict, "Player was modified concurrently, re-read and retry"}}
	case errors.Is(err, model.ErrLocationConflict):
		return &httpError{http.StatusConflict, APIError{CodeLocationConflict, "Player is not at the expected location"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
