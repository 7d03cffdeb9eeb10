package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dovewell/wellness-server/internal/config"
	"github.com/dovewell/wellness-server/users"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminEmail    = "admin@whitedovewellness.com"
)

// EnsureDefaultAdmin seeds the first admin account when the store is empty,
// so a fresh deployment can always be logged into. Credentials can be
// overridden through ADMIN_USERNAME / ADMIN_PASSWORD / ADMIN_EMAIL.
func (s *Server) EnsureDefaultAdmin(ctx context.Context) error {
	existing, err := s.repos.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("[EnsureDefaultAdmin] failed to list users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	username := config.GetEnv("ADMIN_USERNAME", defaultAdminUsername)
	password := config.GetEnv("ADMIN_PASSWORD", defaultAdminPassword)
	email := config.GetEnv("ADMIN_EMAIL", defaultAdminEmail)

	hash, err := users.HashPassword(password)
	if err != nil {
		return fmt.Errorf("[EnsureDefaultAdmin] failed to hash password: %w", err)
	}

	admin := &users.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.repos.Users.Create(ctx, admin); err != nil {
		return fmt.Errorf("[EnsureDefaultAdmin] failed to create admin user: %w", err)
	}

	log.Info().Str("username", username).Msg("default admin user created, change the password after first login")
	return nil
}
