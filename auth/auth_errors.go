package auth

import "github.com/dovewell/wellness-server/internal/errors"

// The service surfaces the shared sentinels so handlers can map them to
// HTTP statuses without importing internal/errors everywhere.
var (
	ErrMissingCredentials = errors.ErrMissingCredentials
	ErrInvalidCredentials = errors.ErrInvalidCredentials
	ErrAccountDisabled    = errors.ErrAccountDisabled
	ErrInvalidToken       = errors.ErrInvalidToken
	ErrInvalidTokenType   = errors.ErrInvalidTokenType
	ErrInvalidRefresh     = errors.ErrInvalidRefreshToken
	ErrUserDisabled       = errors.ErrUserDisabled
	ErrUserNotFound       = errors.ErrUserNotFound
	ErrRateLimited        = errors.ErrRateLimited
)
