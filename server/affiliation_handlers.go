package server

import (
	"net/http"

	"github.com/dovewell/wellness-server/affiliations"
)

type affiliationRequest struct {
	Name         *string `json:"name"`
	LogoURL      *string `json:"logo_url"`
	WebsiteURL   *string `json:"website_url"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

func (s *Server) AffiliationsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Affiliations.List(r.Context(), queryFlag(r, "active_only"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) AffiliationCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req affiliationRequest
		if err := decodeJSON(r, &req); err != nil || req.Name == nil || req.LogoURL == nil {
			respondDetail(w, http.StatusBadRequest, "name and logo_url required")
			return
		}

		affiliation := &affiliations.Affiliation{
			Name:     *req.Name,
			LogoURL:  *req.LogoURL,
			IsActive: true,
		}
		if req.WebsiteURL != nil {
			affiliation.WebsiteURL = *req.WebsiteURL
		}
		if req.DisplayOrder != nil {
			affiliation.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			affiliation.IsActive = *req.IsActive
		}

		if err := s.repos.Affiliations.Create(r.Context(), affiliation); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, affiliation)
	}
}

func (s *Server) AffiliationUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req affiliationRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		affiliation, err := s.repos.Affiliations.Update(r.Context(), r.PathValue("id"), affiliations.Update{
			Name:         req.Name,
			LogoURL:      req.LogoURL,
			WebsiteURL:   req.WebsiteURL,
			DisplayOrder: req.DisplayOrder,
			IsActive:     req.IsActive,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, affiliation)
	}
}

func (s *Server) AffiliationDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Affiliations.Delete(r.Context(), r.PathValue("id")); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
