package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Record errors
	ErrPlayerNotFound   = errors.New("player not found")
	ErrPlayerExists     = errors.New("player already exists")
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrRevisionConflict = errors.New("revision conflict")

	// Authentication and authorization errors
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrAmbiguousCredential = errors.New("credential supplied more than once")
	ErrForbidden           = errors.New("forbidden")
	ErrWrongAudience       = errors.New("token audience not allowed")
	ErrSecretRevoked       = errors.New("shared secret is revoked")

	// Location errors
	ErrLocationConflict    = errors.New("location does not match")
	ErrLocationPersistence = errors.New("location write lost a concurrent update")
)

// LocationConflictError reports the actual location when a location
// compare-and-swap precondition did not hold
type LocationConflictError struct {
	Current string
}

func (e *LocationConflictError) Error() string {
	return fmt.Sprintf("%s: current location is %q", ErrLocationConflict, e.Current)
}

// Is lets errors.Is match ErrLocationConflict
func (e *LocationConflictError) Is(target error) bool {
	return target == ErrLocationConflict
}
