package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dovewell/wellness-server/token"
)

// Transport is an http.RoundTripper that attaches the stored access token to
// every request and runs the renewal cycle on authorization failures: a 401
// triggers one refresh call and one retry of the original request, per
// logical request. A second 401 after the retry is returned to the caller
// unchanged; nothing loops. Failures other than 401 pass straight through.
type Transport struct {
	base       http.RoundTripper
	store      TokenStore
	refreshURL string
}

var _ http.RoundTripper = (*Transport)(nil)

// NewTransport wraps base (nil means http.DefaultTransport) with the renewal
// cycle. refreshURL is the absolute URL of the refresh endpoint.
func NewTransport(base http.RoundTripper, store TokenStore, refreshURL string) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, store: store, refreshURL: refreshURL}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	pair, authenticated := t.store.Load()
	if authenticated {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || !authenticated {
		return resp, nil
	}

	// The request body has already been consumed; without GetBody the
	// original request cannot be replayed safely.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	fresh, refreshErr := t.refresh(req.Context(), pair.RefreshToken)
	if refreshErr != nil {
		// Renewal failed: drop the stored pair and surface the original
		// 401, leaving the caller unauthenticated.
		_ = t.store.Clear()
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+fresh.AccessToken)

	return t.base.RoundTrip(retry)
}

// refresh rotates the stored pair via the refresh endpoint. Concurrent
// requests may each run their own renewal; they are not coalesced, and each
// successful rotation simply overwrites the stored pair.
func (t *Transport) refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, fmt.Errorf("refresh rejected: status %d", resp.StatusCode)
	}

	var pair token.Pair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("decode refreshed pair: %w", err)
	}
	if err := t.store.Save(&pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
