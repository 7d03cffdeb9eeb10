package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/token"
)

const (
	testSecret   = "test-signing-secret"
	testUserID   = "user-1"
	testUsername = "admin"
)

// testAuthConfig satisfies config.AuthConfig without touching the environment.
type testAuthConfig struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func (c testAuthConfig) GetJWTSecret() []byte                 { return []byte(c.secret) }
func (c testAuthConfig) GetAccessTokenExpiry() time.Duration  { return c.accessTTL }
func (c testAuthConfig) GetRefreshTokenExpiry() time.Duration { return c.refreshTTL }
func (c testAuthConfig) GetLoginMaxAttempts() int             { return 10 }
func (c testAuthConfig) GetLoginAttemptWindow() time.Duration { return 15 * time.Minute }

func defaultTestConfig() testAuthConfig {
	return testAuthConfig{
		secret:     testSecret,
		accessTTL:  20 * time.Minute,
		refreshTTL: 300 * time.Minute,
	}
}

func newTestManager(t *testing.T) *token.Manager {
	t.Helper()
	m, err := token.NewManager(defaultTestConfig())
	require.NoError(t, err)
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := token.NewManager(testAuthConfig{secret: ""})
	require.Error(t, err)
}

func TestSignAndVerify(t *testing.T) {
	m := newTestManager(t)

	signed, err := m.Sign(testUserID, testUsername, token.TypeAccess, 20*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, testUserID, claims.Subject)
	require.Equal(t, testUsername, claims.Username)
	require.Equal(t, token.TypeAccess, claims.Type)
}

func TestVerifyMalformedToken(t *testing.T) {
	m := newTestManager(t)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(bad)
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := token.NewManager(testAuthConfig{secret: "a-different-secret"})
	require.NoError(t, err)

	signed, err := other.Sign(testUserID, testUsername, token.TypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = m.Verify(signed)
	require.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newTestManager(t)

	issued := time.Now()
	token.NowTimeFunc = func() time.Time { return issued }
	defer func() { token.NowTimeFunc = time.Now }()

	signed, err := m.Sign(testUserID, testUsername, token.TypeAccess, 20*time.Minute)
	require.NoError(t, err)

	// Still valid one minute before expiry
	token.NowTimeFunc = func() time.Time { return issued.Add(19 * time.Minute) }
	_, err = m.Verify(signed)
	require.NoError(t, err)

	// Void once the expiry elapses
	token.NowTimeFunc = func() time.Time { return issued.Add(21 * time.Minute) }
	_, err = m.Verify(signed)
	require.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestVerifyRejectsNonHMACAlgorithm(t *testing.T) {
	m := newTestManager(t)

	// alg=none token with otherwise plausible claims
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{
		"sub":  testUserID,
		"type": "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(raw)
	require.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestIssuePairInvariant(t *testing.T) {
	m := newTestManager(t)
	issuer := token.NewIssuer(m, defaultTestConfig())

	pair, err := issuer.IssuePair(testUserID, testUsername)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "bearer", pair.TokenType)
	require.Equal(t, int64(1200), pair.ExpiresIn)

	access, err := m.Verify(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := m.Verify(pair.RefreshToken)
	require.NoError(t, err)

	// Both tokens bound to the same subject, access always expires first
	require.Equal(t, token.TypeAccess, access.Type)
	require.Equal(t, token.TypeRefresh, refresh.Type)
	require.Equal(t, access.Subject, refresh.Subject)
	require.Equal(t, access.Username, refresh.Username)
	require.True(t, access.ExpiresAt.Time.Before(refresh.ExpiresAt.Time))
}
