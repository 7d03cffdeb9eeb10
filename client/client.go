// Package client is the Go API client the admin console and CLI tooling use
// against the wellness server. It stores the issued token pair and renews it
// transparently when the access token expires.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dovewell/wellness-server/contacts"
	"github.com/dovewell/wellness-server/therapies"
	"github.com/dovewell/wellness-server/token"
	"github.com/dovewell/wellness-server/users"
)

// APIError is a non-2xx response from the server, carrying the detail
// message from the error body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	baseURL string
	store   TokenStore
	httpc   *http.Client
}

// Option modifies the Client instance.
type Option func(*Client)

// WithTokenStore replaces the default in-memory store, e.g. with a FileStore
// for CLI sessions.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithBaseTransport sets the transport under the renewal layer (primarily
// for testing).
func WithBaseTransport(base http.RoundTripper) Option {
	return func(c *Client) {
		c.httpc.Transport = base
	}
}

func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   NewMemoryStore(),
		httpc:   &http.Client{},
	}
	for _, opt := range options {
		opt(c)
	}
	c.httpc.Transport = NewTransport(c.httpc.Transport, c.store, c.baseURL+"/api/admin/auth/refresh")
	return c
}

// Login exchanges credentials for a token pair and stores it. The renewal
// cycle keeps the session alive from here on.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var pair token.Pair
	err := c.do(ctx, http.MethodPost, "/api/admin/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &pair)
	if err != nil {
		return err
	}
	return c.store.Save(&pair)
}

// Logout discards the stored token pair. The tokens themselves stay valid
// until they expire; the server keeps no session to invalidate.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Me returns the authenticated account's identity summary.
func (c *Client) Me(ctx context.Context) (*users.AdminUser, error) {
	var user users.AdminUser
	if err := c.do(ctx, http.MethodGet, "/api/admin/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Therapies lists therapies, optionally only active ones.
func (c *Client) Therapies(ctx context.Context, activeOnly bool) ([]*therapies.Therapy, error) {
	path := "/api/therapies"
	if activeOnly {
		path += "?active_only=true"
	}
	var list []*therapies.Therapy
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Contacts lists contact submissions from the admin inbox.
func (c *Client) Contacts(ctx context.Context, unreadOnly bool) ([]*contacts.Submission, error) {
	path := "/api/admin/contacts"
	if unreadOnly {
		path += "?unread_only=true"
	}
	var list []*contacts.Submission
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Do performs an arbitrary API call, decoding a successful JSON response
// into out (which may be nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
