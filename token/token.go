// Package token signs and verifies the compact HS256 tokens used by the
// admin API. Tokens are self-describing and never stored server-side; a token
// remains valid until its expiry elapses.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/internal/config"
	"github.com/dovewell/wellness-server/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Type discriminates access tokens from refresh tokens. A token presented
// where the other type is expected is rejected regardless of signature.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Claims is the claim-set carried by every issued token.
type Claims struct {
	Username string `json:"username,omitempty"`
	Type     Type   `json:"type"`
	jwtlib.RegisteredClaims
}

// Manager handles symmetric sign/verify of token claims using a shared secret.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager. An empty signing secret is a fatal
// misconfiguration, not a runtime error.
func NewManager(cfg config.AuthConfig) (*Manager, error) {
	secret := cfg.GetJWTSecret()
	if len(secret) == 0 {
		return nil, errors.Wrapf(errors.ErrInternal, "token.NewManager: JWT signing secret is not configured")
	}
	return &Manager{secret: secret}, nil
}

// Sign encodes the claims with expiry = now + lifetime and signs them.
func (m *Manager) Sign(userID, username string, typ Type, lifetime time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := Claims{
		Username: username,
		Type:     typ,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(), // makes every issued token distinct
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errors.Wrapf(err, "token.Sign")
	}
	return signed, nil
}

// Verify decodes a token and returns its claims if the signature and expiry
// are both valid. Malformed input, a signature mismatch, and an elapsed expiry
// all collapse to ErrInvalidToken; callers only need valid vs invalid.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.ErrInvalidToken
		}
		return m.secret, nil
	}, jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }))
	if err != nil || !parsed.Valid {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}
