package server

import (
	"net"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LoginHandler exchanges a username/password pair for a fresh token pair.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "username and password required")
			return
		}

		pair, err := s.auth.Login(r.Context(), req.Username, req.Password, remoteIP(r))
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, pair)
	}
}

// RefreshHandler rotates a refresh token into a brand-new token pair.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "refresh token required")
			return
		}

		pair, err := s.auth.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, pair)
	}
}

// MeHandler returns the caller's own identity summary. This is one of the
// points that consults the credential store, so a deactivated account is
// rejected here even while its access token is still valid.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.auth.CurrentUser(r.Context(), UserIDFromContext(r.Context()))
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "user not found or disabled")
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func remoteIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
