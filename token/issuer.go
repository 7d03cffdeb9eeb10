package token

import (
	"time"

	"github.com/dovewell/wellness-server/internal/config"
)

// Pair is an access token and a refresh token issued together, both bound to
// the same subject. ExpiresIn reflects the access token's lifetime in seconds
// and is advisory metadata for the caller.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Issuer produces token pairs with configured lifetimes. The access token
// lifetime is always strictly shorter than the refresh token lifetime.
type Issuer struct {
	manager    *Manager
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer creates an issuer bound to the given manager and configuration.
func NewIssuer(manager *Manager, cfg config.AuthConfig) *Issuer {
	return &Issuer{
		manager:    manager,
		accessTTL:  cfg.GetAccessTokenExpiry(),
		refreshTTL: cfg.GetRefreshTokenExpiry(),
	}
}

// IssueAccess creates a short-lived access token for the subject.
func (i *Issuer) IssueAccess(userID, username string) (string, error) {
	return i.manager.Sign(userID, username, TypeAccess, i.accessTTL)
}

// IssueRefresh creates a refresh token for the subject.
func (i *Issuer) IssueRefresh(userID, username string) (string, error) {
	return i.manager.Sign(userID, username, TypeRefresh, i.refreshTTL)
}

// IssuePair creates both tokens as a single operation.
func (i *Issuer) IssuePair(userID, username string) (*Pair, error) {
	access, err := i.IssueAccess(userID, username)
	if err != nil {
		return nil, err
	}
	refresh, err := i.IssueRefresh(userID, username)
	if err != nil {
		return nil, err
	}
	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(i.accessTTL.Seconds()),
	}, nil
}
