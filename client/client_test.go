package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	affiliationsfake "github.com/dovewell/wellness-server/affiliations/repofake"
	"github.com/dovewell/wellness-server/client"
	clientsfake "github.com/dovewell/wellness-server/clients/repofake"
	contactsfake "github.com/dovewell/wellness-server/contacts/repofake"
	"github.com/dovewell/wellness-server/internal/config"
	policiesfake "github.com/dovewell/wellness-server/policies/repofake"
	pricesfake "github.com/dovewell/wellness-server/prices/repofake"
	"github.com/dovewell/wellness-server/server"
	settingsfake "github.com/dovewell/wellness-server/settings/repofake"
	therapiesfake "github.com/dovewell/wellness-server/therapies/repofake"
	"github.com/dovewell/wellness-server/token"
	usersfake "github.com/dovewell/wellness-server/users/repofake"
)

type testConfig struct {
	config.EnvVars
	config.Cors
	config.Auth
	config.Store
}

func (testConfig) GetJWTSecret() []byte {
	return []byte("client-test-secret")
}

func (testConfig) GetEnv() string {
	return "TEST"
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, err := server.New(testConfig{}, server.Repos{
		Users:        usersfake.NewFakeUserRepo(),
		Therapies:    therapiesfake.NewFakeTherapyRepo(),
		Prices:       pricesfake.NewFakePriceRepo(),
		Contacts:     contactsfake.NewFakeContactRepo(),
		Affiliations: affiliationsfake.NewFakeAffiliationRepo(),
		Policies:     policiesfake.NewFakePolicyRepo(),
		Clients:      clientsfake.NewFakeClientRepo(),
		Settings:     settingsfake.NewFakeSettingsRepo(),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	c := client.New(ts.URL)

	require.NoError(t, c.Login(t.Context(), "admin", "admin123"))

	me, err := c.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "admin", me.Username)
	require.Empty(t, me.PasswordHash)
}

func TestLoginFailure(t *testing.T) {
	ts := newTestServer(t)
	c := client.New(ts.URL)

	err := c.Login(t.Context(), "admin", "wrong")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid credentials", apiErr.Detail)
}

// After the access token expires the first 401 must transparently refresh
// and retry, so the caller never sees the failure.
func TestRenewalCycleOnExpiredAccessToken(t *testing.T) {
	ts := newTestServer(t)
	store := client.NewMemoryStore()
	c := client.New(ts.URL, client.WithTokenStore(store))

	require.NoError(t, c.Login(t.Context(), "admin", "admin123"))
	before, ok := store.Load()
	require.True(t, ok)

	// Move past the access lifetime but inside the refresh lifetime
	token.NowTimeFunc = func() time.Time { return time.Now().Add(21 * time.Minute) }
	defer func() { token.NowTimeFunc = time.Now }()

	me, err := c.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "admin", me.Username)

	// The stored pair was rotated by the renewal
	after, ok := store.Load()
	require.True(t, ok)
	require.NotEqual(t, before.AccessToken, after.AccessToken)
	require.NotEqual(t, before.RefreshToken, after.RefreshToken)
}

// When the refresh token itself is dead, the renewal fails once, the store
// is cleared, and the caller is back to an unauthenticated state.
func TestFailedRenewalClearsStore(t *testing.T) {
	ts := newTestServer(t)
	store := client.NewMemoryStore()
	c := client.New(ts.URL, client.WithTokenStore(store))

	require.NoError(t, c.Login(t.Context(), "admin", "admin123"))

	// Both tokens expired
	token.NowTimeFunc = func() time.Time { return time.Now().Add(301 * time.Minute) }
	defer func() { token.NowTimeFunc = time.Now }()

	_, err := c.Me(t.Context())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, ok := store.Load()
	require.False(t, ok)
}

// The one-shot guard: a request that still gets 401 after a successful
// refresh is returned as-is, never looping 401→refresh→401.
func TestRenewalRetriesExactlyOnce(t *testing.T) {
	var apiCalls, refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(token.Pair{ //nolint:errcheck
			AccessToken:  "rotated-access",
			RefreshToken: "rotated-refresh",
			TokenType:    "bearer",
			ExpiresIn:    1200,
		})
	})
	mux.HandleFunc("/api/admin/auth/me", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid or expired token"}) //nolint:errcheck
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	store := client.NewMemoryStore()
	require.NoError(t, store.Save(&token.Pair{AccessToken: "stale", RefreshToken: "gold", TokenType: "bearer"}))
	c := client.New(ts.URL, client.WithTokenStore(store))

	_, err := c.Me(t.Context())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	require.Equal(t, int64(2), apiCalls.Load())    // original + single retry
	require.Equal(t, int64(1), refreshCalls.Load())
}

// Concurrent requests each carry their own one-shot flag: renewals are not
// coalesced, and none of them retries more than once.
func TestConcurrentRequestsEachGetOneRetry(t *testing.T) {
	const workers = 8

	var apiCalls, refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(token.Pair{ //nolint:errcheck
			AccessToken:  "rotated-access",
			RefreshToken: "rotated-refresh",
			TokenType:    "bearer",
			ExpiresIn:    1200,
		})
	})
	mux.HandleFunc("/api/admin/auth/me", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid or expired token"}) //nolint:errcheck
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	store := client.NewMemoryStore()
	require.NoError(t, store.Save(&token.Pair{AccessToken: "stale", RefreshToken: "gold", TokenType: "bearer"}))
	c := client.New(ts.URL, client.WithTokenStore(store))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Me(t.Context())
		}()
	}
	wg.Wait()

	require.Equal(t, int64(2*workers), apiCalls.Load())
	require.LessOrEqual(t, refreshCalls.Load(), int64(workers))
	require.GreaterOrEqual(t, refreshCalls.Load(), int64(1))
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := client.NewFileStore(path)

	_, ok := store.Load()
	require.False(t, ok)

	pair := &token.Pair{AccessToken: "a", RefreshToken: "r", TokenType: "bearer", ExpiresIn: 1200}
	require.NoError(t, store.Save(pair))

	loaded, ok := store.Load()
	require.True(t, ok)
	require.Equal(t, pair, loaded)

	require.NoError(t, store.Clear())
	_, ok = store.Load()
	require.False(t, ok)

	// Clearing an already-empty store is fine
	require.NoError(t, store.Clear())
}
