package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portal
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRateLimited        = errors.New("too many login attempts")

	// Session errors
	ErrNoProvider      = errors.New("session store used outside of a session provider")
	ErrMalformedRecord = errors.New("malformed session record")

	// Storage errors
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid key")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
