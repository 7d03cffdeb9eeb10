// Package auth orchestrates the stateless dual-token authentication protocol:
// password login, refresh-token rotation, and identity lookups. No session
// record is kept server-side; the signed tokens are the only session state.
package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/dovewell/wellness-server/token"
	"github.com/dovewell/wellness-server/users"
)

// Service provides the login and refresh flows over the credential store.
type Service struct {
	users   users.Repo
	tokens  *token.Manager
	issuer  *token.Issuer
	limiter LoginLimiter     // optional, nil disables throttling
	nowTime func() time.Time // injectable for testing
}

// ServiceOption modifies the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithLoginLimiter enables login attempt throttling.
func WithLoginLimiter(limiter LoginLimiter) ServiceOption {
	return func(s *Service) {
		s.limiter = limiter
	}
}

// NewService initializes the authentication service with required dependencies.
func NewService(userRepo users.Repo, tokens *token.Manager, issuer *token.Issuer, options ...ServiceOption) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] users repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token manager is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewService] token issuer is required")
	}

	service := &Service{
		users:   userRepo,
		tokens:  tokens,
		issuer:  issuer,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Login verifies a username/password pair and issues a fresh token pair.
// Unknown usernames and wrong passwords are deliberately indistinguishable;
// only a disabled account gets a distinct message.
func (s *Service) Login(ctx context.Context, username, password, remoteIP string) (*token.Pair, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Enforce(ctx, username, remoteIP); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Same failure as a wrong password, to avoid username enumeration
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuer.IssuePair(user.ID, user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "[Login] failed to issue token pair")
	}

	log.Info().Str("username", username).Msg("user logged in")
	return pair, nil
}

// Refresh rotates a refresh token into a brand-new token pair. This is the
// only point besides login at which a deactivated account is actually
// blocked; an access token issued before deactivation keeps authorizing
// requests until it expires.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	if refreshToken == "" {
		return nil, ErrMissingCredentials
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	if claims.Type != token.TypeRefresh {
		return nil, ErrInvalidTokenType
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil || !user.IsActive {
		return nil, ErrUserDisabled
	}

	pair, err := s.issuer.IssuePair(user.ID, user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "[Refresh] failed to issue token pair")
	}

	log.Info().Str("username", user.Username).Msg("token refreshed")
	return pair, nil
}

// CurrentUser resolves the authenticated subject's own identity record.
// The password hash never leaves this layer serialized.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*users.AdminUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	return user, nil
}
