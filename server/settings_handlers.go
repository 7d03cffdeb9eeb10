package server

import (
	"net/http"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/settings"
)

type settingsRequest struct {
	BusinessName *string               `json:"business_name"`
	Tagline      *string               `json:"tagline"`
	Email        *string               `json:"email"`
	Phone        *string               `json:"phone"`
	Address      *string               `json:"address"`
	SocialLinks  *settings.SocialLinks `json:"social_links"`
}

// SettingsGetHandler serves the site settings document, falling back to the
// built-in defaults when nothing has been saved yet.
func (s *Server) SettingsGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stored, err := s.repos.Settings.Get(r.Context())
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				respondJSON(w, http.StatusOK, settings.Defaults())
				return
			}
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, stored)
	}
}

func (s *Server) SettingsUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settingsRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		stored, err := s.repos.Settings.Upsert(r.Context(), settings.Update{
			BusinessName: req.BusinessName,
			Tagline:      req.Tagline,
			Email:        req.Email,
			Phone:        req.Phone,
			Address:      req.Address,
			SocialLinks:  req.SocialLinks,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, stored)
	}
}
