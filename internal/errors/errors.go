package errors

import (
	"errors"
	"fmt"
)

// Common error types for the wellness admin server
var (
	// Authentication errors
	ErrMissingCredentials = errors.New("username and password required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUserNotFound       = errors.New("user not found")

	// Token errors
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInvalidTokenType    = errors.New("invalid token type")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserDisabled        = errors.New("user not found or disabled")

	// Record errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// General errors
	ErrRateLimited = errors.New("too many attempts")
	ErrInternal    = errors.New("internal error")
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

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
