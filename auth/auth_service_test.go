package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dovewell/wellness-server/auth"
	"github.com/dovewell/wellness-server/token"
	"github.com/dovewell/wellness-server/users"
	"github.com/dovewell/wellness-server/users/repofake"
)

const (
	testSecret   = "test-signing-secret"
	testUsername = "admin"
	testPassword = "admin123"
	testEmail    = "admin@example.com"
)

type testAuthConfig struct{}

func (testAuthConfig) GetJWTSecret() []byte                 { return []byte(testSecret) }
func (testAuthConfig) GetAccessTokenExpiry() time.Duration  { return 20 * time.Minute }
func (testAuthConfig) GetRefreshTokenExpiry() time.Duration { return 300 * time.Minute }
func (testAuthConfig) GetLoginMaxAttempts() int             { return 10 }
func (testAuthConfig) GetLoginAttemptWindow() time.Duration { return 15 * time.Minute }

// testFixture holds all test dependencies
type testFixture struct {
	userRepo *repofake.FakeUserRepo
	tokens   *token.Manager
	issuer   *token.Issuer
	service  *auth.Service
}

func setupTestFixture(t *testing.T, options ...auth.ServiceOption) *testFixture {
	t.Helper()

	ur := repofake.NewFakeUserRepo()

	tm, err := token.NewManager(testAuthConfig{})
	require.NoError(t, err)
	issuer := token.NewIssuer(tm, testAuthConfig{})

	service, err := auth.NewService(ur, tm, issuer, options...)
	require.NoError(t, err)

	return &testFixture{
		userRepo: ur,
		tokens:   tm,
		issuer:   issuer,
		service:  service,
	}
}

// createTestUser creates and stores an admin account
func (f *testFixture) createTestUser(t *testing.T, username, password string, active bool) *users.AdminUser {
	t.Helper()

	passwordHash, err := users.HashPassword(password)
	require.NoError(t, err)

	user := &users.AdminUser{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: passwordHash,
		IsActive:     active,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func TestLoginSuccess(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUsername, testPassword, true)

	pair, err := f.service.Login(context.Background(), testUsername, testPassword, "")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "bearer", pair.TokenType)
	require.Equal(t, int64(1200), pair.ExpiresIn)
}

func TestLoginMissingCredentials(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(context.Background(), "", testPassword, "")
	require.ErrorIs(t, err, auth.ErrMissingCredentials)

	_, err = f.service.Login(context.Background(), testUsername, "", "")
	require.ErrorIs(t, err, auth.ErrMissingCredentials)
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUsername, testPassword, true)

	// Unknown username and wrong password must be the same failure
	_, errUnknown := f.service.Login(context.Background(), "nobody", testPassword, "")
	_, errWrongPass := f.service.Login(context.Background(), testUsername, "wrong-password", "")

	require.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPass, auth.ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginDisabledAccount(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUsername, testPassword, false)

	_, err := f.service.Login(context.Background(), testUsername, testPassword, "")
	require.ErrorIs(t, err, auth.ErrAccountDisabled)
}

func TestRefreshRotation(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUsername, testPassword, true)

	pair, err := f.service.Login(context.Background(), testUsername, testPassword, "")
	require.NoError(t, err)

	// There is no server-side single-use enforcement; two consecutive
	// refreshes with the same refresh token both succeed independently.
	first, err := f.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	second, err := f.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	require.NotEqual(t, first.AccessToken, second.AccessToken)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
	require.NotEqual(t, pair.RefreshToken, first.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, testUsername, testPassword, true)

	access, err := f.issuer.IssueAccess(user.ID, user.Username)
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), access)
	require.ErrorIs(t, err, auth.ErrInvalidTokenType)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background(), "not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidRefresh)

	_, err = f.service.Refresh(context.Background(), "")
	require.ErrorIs(t, err, auth.ErrMissingCredentials)
}

func TestRefreshBlocksDeactivatedAccount(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, testUsername, testPassword, true)

	pair, err := f.service.Login(context.Background(), testUsername, testPassword, "")
	require.NoError(t, err)

	// Deactivate after the pair was issued
	inactive := false
	_, err = f.userRepo.Update(context.Background(), user.ID, users.Update{IsActive: &inactive})
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrUserDisabled)
}

func TestCurrentUser(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, testUsername, testPassword, true)

	got, err := f.service.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)

	_, err = f.service.CurrentUser(context.Background(), "missing-id")
	require.ErrorIs(t, err, auth.ErrUserNotFound)

	inactive := false
	_, err = f.userRepo.Update(context.Background(), user.ID, users.Update{IsActive: &inactive})
	require.NoError(t, err)
	_, err = f.service.CurrentUser(context.Background(), user.ID)
	require.ErrorIs(t, err, auth.ErrUserDisabled)
}

// denyAllLimiter trips on every attempt.
type denyAllLimiter struct{}

func (denyAllLimiter) Enforce(context.Context, string, string) error { return auth.ErrRateLimited }

func TestLoginLimiterBlocksBeforePasswordCheck(t *testing.T) {
	f := setupTestFixture(t, auth.WithLoginLimiter(denyAllLimiter{}))
	f.createTestUser(t, testUsername, testPassword, true)

	_, err := f.service.Login(context.Background(), testUsername, testPassword, "203.0.113.9")
	require.ErrorIs(t, err, auth.ErrRateLimited)
}
