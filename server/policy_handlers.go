package server

import (
	"net/http"

	"github.com/dovewell/wellness-server/policies"
)

type policyRequest struct {
	Title        *string `json:"title"`
	Slug         *string `json:"slug"`
	Content      *string `json:"content"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

func (s *Server) PoliciesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Policies.List(r.Context(), queryFlag(r, "active_only"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) PolicyGetBySlugHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		policy, err := s.repos.Policies.GetBySlug(r.Context(), r.PathValue("slug"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, policy)
	}
}

func (s *Server) PolicyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req policyRequest
		if err := decodeJSON(r, &req); err != nil || req.Title == nil || req.Slug == nil || req.Content == nil {
			respondDetail(w, http.StatusBadRequest, "title, slug and content required")
			return
		}

		policy := &policies.Policy{
			Title:    *req.Title,
			Slug:     *req.Slug,
			Content:  *req.Content,
			IsActive: true,
		}
		if req.DisplayOrder != nil {
			policy.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			policy.IsActive = *req.IsActive
		}

		if err := s.repos.Policies.Create(r.Context(), policy); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, policy)
	}
}

func (s *Server) PolicyUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req policyRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		policy, err := s.repos.Policies.Update(r.Context(), r.PathValue("id"), policies.Update{
			Title:        req.Title,
			Slug:         req.Slug,
			Content:      req.Content,
			DisplayOrder: req.DisplayOrder,
			IsActive:     req.IsActive,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, policy)
	}
}

func (s *Server) PolicyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Policies.Delete(r.Context(), r.PathValue("id")); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
