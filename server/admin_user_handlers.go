package server

import (
	"net/http"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/users"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

func (s *Server) AdminUsersListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Users.List(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) AdminUserCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := decodeJSON(r, &req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
			respondDetail(w, http.StatusBadRequest, "username, email and password required")
			return
		}

		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			respondDetail(w, http.StatusBadRequest, err.Error())
			return
		}

		if taken, err := s.usernameOrEmailTaken(r, req.Username, req.Email, ""); err != nil {
			respondError(w, err)
			return
		} else if taken {
			respondDetail(w, http.StatusBadRequest, "username or email already exists")
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			respondError(w, err)
			return
		}

		user := &users.AdminUser{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := s.repos.Users.Create(r.Context(), user); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) AdminUserGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.repos.Users.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

func (s *Server) AdminUserUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var req updateUserRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Disabling your own account would lock you out mid-session
		if req.IsActive != nil && !*req.IsActive && id == UserIDFromContext(r.Context()) {
			respondDetail(w, http.StatusBadRequest, "cannot disable your own account")
			return
		}

		var username, email string
		if req.Username != nil {
			username = *req.Username
		}
		if req.Email != nil {
			email = *req.Email
		}
		if username != "" || email != "" {
			if taken, err := s.usernameOrEmailTaken(r, username, email, id); err != nil {
				respondError(w, err)
				return
			} else if taken {
				respondDetail(w, http.StatusBadRequest, "username or email already exists")
				return
			}
		}

		update := users.Update{
			Username: req.Username,
			Email:    req.Email,
			IsActive: req.IsActive,
		}
		if req.Password != nil && *req.Password != "" {
			if err := users.ValidatePasswordStrength(*req.Password); err != nil {
				respondDetail(w, http.StatusBadRequest, err.Error())
				return
			}
			hash, err := users.HashPassword(*req.Password)
			if err != nil {
				respondError(w, err)
				return
			}
			update.PasswordHash = &hash
		}

		user, err := s.repos.Users.Update(r.Context(), id, update)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

func (s *Server) AdminUserDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == UserIDFromContext(r.Context()) {
			respondDetail(w, http.StatusBadRequest, "cannot delete your own account")
			return
		}
		if err := s.repos.Users.Delete(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

// usernameOrEmailTaken reports whether another account already claims the
// given username or email. excludeID skips the account being updated.
func (s *Server) usernameOrEmailTaken(r *http.Request, username, email, excludeID string) (bool, error) {
	if username != "" {
		existing, err := s.repos.Users.GetByUsername(r.Context(), username)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return false, err
		}
		if existing != nil && existing.ID != excludeID {
			return true, nil
		}
	}
	if email != "" {
		existing, err := s.repos.Users.GetByEmail(r.Context(), email)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return false, err
		}
		if existing != nil && existing.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
