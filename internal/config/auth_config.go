package config

import (
	"strconv"
	"time"
)

type AuthConfig interface {
	GetJWTSecret() []byte
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetLoginMaxAttempts() int
	GetLoginAttemptWindow() time.Duration
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetJWTSecret returns the shared HMAC signing secret. An empty secret is a
// fatal misconfiguration; the token manager refuses to start without one.
func (Auth) GetJWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET_KEY", ""))
}

func (Auth) GetAccessTokenExpiry() time.Duration {
	return minutesEnv("ACCESS_TOKEN_EXPIRE_MINUTES", 20)
}

func (Auth) GetRefreshTokenExpiry() time.Duration {
	return minutesEnv("REFRESH_TOKEN_EXPIRE_MINUTES", 300) // 5 hour refresh window
}

func (Auth) GetLoginMaxAttempts() int {
	if n, err := strconv.Atoi(GetEnv("LOGIN_MAX_ATTEMPTS", "10")); err == nil && n > 0 {
		return n
	}
	return 10
}

func (Auth) GetLoginAttemptWindow() time.Duration {
	return minutesEnv("LOGIN_ATTEMPT_WINDOW_MINUTES", 15)
}

func minutesEnv(envVar string, defaultMinutes int) time.Duration {
	if n, err := strconv.Atoi(GetEnv(envVar, "")); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	return time.Duration(defaultMinutes) * time.Minute
}
