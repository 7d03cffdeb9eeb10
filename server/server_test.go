package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	affiliationsfake "github.com/dovewell/wellness-server/affiliations/repofake"
	clientsfake "github.com/dovewell/wellness-server/clients/repofake"
	contactsfake "github.com/dovewell/wellness-server/contacts/repofake"
	"github.com/dovewell/wellness-server/internal/config"
	"github.com/dovewell/wellness-server/internal/utils"
	policiesfake "github.com/dovewell/wellness-server/policies/repofake"
	pricesfake "github.com/dovewell/wellness-server/prices/repofake"
	"github.com/dovewell/wellness-server/server"
	settingsfake "github.com/dovewell/wellness-server/settings/repofake"
	therapiesfake "github.com/dovewell/wellness-server/therapies/repofake"
	"github.com/dovewell/wellness-server/token"
	"github.com/dovewell/wellness-server/users"
	usersfake "github.com/dovewell/wellness-server/users/repofake"
)

type testConfig struct {
	config.EnvVars
	config.Cors
	config.Auth
	config.Store
}

func (testConfig) GetJWTSecret() []byte {
	return []byte("server-test-secret")
}

func (testConfig) GetEnv() string {
	return "TEST"
}

type testFixture struct {
	server *server.Server
	users  *usersfake.FakeUserRepo
	repos  server.Repos
}

func newTestFixture(t *testing.T, options ...server.Option) *testFixture {
	t.Helper()

	repos := server.Repos{
		Users:        usersfake.NewFakeUserRepo(),
		Therapies:    therapiesfake.NewFakeTherapyRepo(),
		Prices:       pricesfake.NewFakePriceRepo(),
		Contacts:     contactsfake.NewFakeContactRepo(),
		Affiliations: affiliationsfake.NewFakeAffiliationRepo(),
		Policies:     policiesfake.NewFakePolicyRepo(),
		Clients:      clientsfake.NewFakeClientRepo(),
		Settings:     settingsfake.NewFakeSettingsRepo(),
	}

	srv, err := server.New(testConfig{}, repos, options...)
	require.NoError(t, err)

	return &testFixture{
		server: srv,
		users:  repos.Users.(*usersfake.FakeUserRepo),
		repos:  repos,
	}
}

func (f *testFixture) do(t *testing.T, method, path, accessToken string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func (f *testFixture) login(t *testing.T, username, password string) token.Pair {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pair token.Pair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	return pair
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestDefaultAdminSeededAndLogin(t *testing.T) {
	f := newTestFixture(t)

	pair := f.login(t, "admin", "admin123")
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "bearer", pair.TokenType)
	require.Equal(t, int64(1200), pair.ExpiresIn)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newTestFixture(t)

	wrongPassword := f.do(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"username": "admin", "password": "nope",
	})
	unknownUser := f.do(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"username": "ghost", "password": "nope",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.Equal(t, "invalid credentials", detailOf(t, wrongPassword))
	require.Equal(t, detailOf(t, wrongPassword), detailOf(t, unknownUser))
}

func TestLoginMissingCredentials(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{"username": "admin"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "username and password required", detailOf(t, rec))
}

func TestGateRejectsMissingAndMalformedTokens(t *testing.T) {
	f := newTestFixture(t)

	noToken := f.do(t, http.MethodGet, "/api/admin/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, noToken.Code)
	require.Equal(t, "no token", detailOf(t, noToken))

	garbage := f.do(t, http.MethodGet, "/api/admin/auth/me", "not.a.token", nil)
	require.Equal(t, http.StatusUnauthorized, garbage.Code)
	require.Equal(t, "invalid or expired token", detailOf(t, garbage))
}

func TestGateRejectsRefreshTokenType(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	rec := f.do(t, http.MethodGet, "/api/admin/auth/me", pair.RefreshToken, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid token type", detailOf(t, rec))
}

func TestRefreshRotation(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	rec := f.do(t, http.MethodPost, "/api/admin/auth/refresh", "", map[string]string{
		"refresh_token": pair.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var next token.Pair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
	require.NotEmpty(t, next.AccessToken)
	require.NotEqual(t, pair.AccessToken, next.AccessToken)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	rec := f.do(t, http.MethodPost, "/api/admin/auth/refresh", "", map[string]string{
		"refresh_token": pair.AccessToken,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid token type", detailOf(t, rec))
}

func TestRefreshRejectsGarbage(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(t, http.MethodPost, "/api/admin/auth/refresh", "", map[string]string{
		"refresh_token": "garbage",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid or expired refresh token", detailOf(t, rec))
}

func TestMeReturnsIdentityWithoutPasswordHash(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	rec := f.do(t, http.MethodGet, "/api/admin/auth/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "admin", body["username"])
	require.NotContains(t, body, "password_hash")
}

// A token issued before deactivation keeps passing the gate until it
// expires, but refresh and identity lookups are blocked immediately.
func TestRevocationGap(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	admin, err := f.users.GetByUsername(t.Context(), "admin")
	require.NoError(t, err)
	_, err = f.users.Update(t.Context(), admin.ID, users.Update{IsActive: utils.Ptr(false)})
	require.NoError(t, err)

	// Ordinary protected requests still pass the gate
	stillAllowed := f.do(t, http.MethodGet, "/api/admin/therapies", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, stillAllowed.Code)

	// The credential store is consulted on /me and refresh
	me := f.do(t, http.MethodGet, "/api/admin/auth/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, me.Code)
	require.Equal(t, "user not found or disabled", detailOf(t, me))

	refresh := f.do(t, http.MethodPost, "/api/admin/auth/refresh", "", map[string]string{
		"refresh_token": pair.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, refresh.Code)
	require.Equal(t, "user not found or disabled", detailOf(t, refresh))
}

func TestLoginWithDisabledAccount(t *testing.T) {
	f := newTestFixture(t)

	admin, err := f.users.GetByUsername(t.Context(), "admin")
	require.NoError(t, err)
	_, err = f.users.Update(t.Context(), admin.ID, users.Update{IsActive: utils.Ptr(false)})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"username": "admin", "password": "admin123",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "account disabled", detailOf(t, rec))
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	token.NowTimeFunc = func() time.Time { return time.Now().Add(21 * time.Minute) }
	defer func() { token.NowTimeFunc = time.Now }()

	rec := f.do(t, http.MethodGet, "/api/admin/auth/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid or expired token", detailOf(t, rec))

	// The refresh token outlives the access token
	refresh := f.do(t, http.MethodPost, "/api/admin/auth/refresh", "", map[string]string{
		"refresh_token": pair.RefreshToken,
	})
	require.Equal(t, http.StatusOK, refresh.Code)
}
