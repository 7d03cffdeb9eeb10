package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/dovewell/wellness-server/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeyUsername stores the authenticated username
	ContextKeyUsername ContextKey = "username"
)

// RequireAuth validates the bearer access token on protected API routes.
// It only checks the token itself: an account deactivated after the token
// was issued keeps passing until the token expires, which is the documented
// cost of keeping no session state server-side.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			bearer, ok := bearerToken(r)
			if !ok {
				respondDetail(w, http.StatusUnauthorized, "no token")
				return
			}

			claims, err := s.tokens.Verify(bearer)
			if err != nil {
				respondDetail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if claims.Type != token.TypeAccess {
				respondDetail(w, http.StatusUnauthorized, "invalid token type")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
			next(w, r.WithContext(ctx))
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserIDFromContext returns the subject id RequireAuth stored on the request.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyUserID).(string)
	return id
}

// UsernameFromContext returns the username RequireAuth stored on the request.
func UsernameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(ContextKeyUsername).(string)
	return name
}
