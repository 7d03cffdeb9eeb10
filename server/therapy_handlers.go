package server

import (
	"net/http"
	"strconv"

	"github.com/dovewell/wellness-server/therapies"
)

type therapyRequest struct {
	Name             *string `json:"name"`
	ShortDescription *string `json:"short_description"`
	FullDescription  *string `json:"full_description"`
	ImageURL         *string `json:"image_url"`
	Icon             *string `json:"icon"`
	DisplayOrder     *int    `json:"display_order"`
	IsActive         *bool   `json:"is_active"`
}

func (s *Server) TherapiesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Therapies.List(r.Context(), queryFlag(r, "active_only"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) TherapyGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		therapy, err := s.repos.Therapies.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, therapy)
	}
}

func (s *Server) TherapyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req therapyRequest
		if err := decodeJSON(r, &req); err != nil || req.Name == nil || req.ShortDescription == nil {
			respondDetail(w, http.StatusBadRequest, "name and short_description required")
			return
		}

		therapy := &therapies.Therapy{
			Name:             *req.Name,
			ShortDescription: *req.ShortDescription,
			IsActive:         true,
		}
		if req.FullDescription != nil {
			therapy.FullDescription = *req.FullDescription
		}
		if req.ImageURL != nil {
			therapy.ImageURL = *req.ImageURL
		}
		if req.Icon != nil {
			therapy.Icon = *req.Icon
		}
		if req.DisplayOrder != nil {
			therapy.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			therapy.IsActive = *req.IsActive
		}

		if err := s.repos.Therapies.Create(r.Context(), therapy); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, therapy)
	}
}

func (s *Server) TherapyUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req therapyRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		therapy, err := s.repos.Therapies.Update(r.Context(), r.PathValue("id"), therapies.Update{
			Name:             req.Name,
			ShortDescription: req.ShortDescription,
			FullDescription:  req.FullDescription,
			ImageURL:         req.ImageURL,
			Icon:             req.Icon,
			DisplayOrder:     req.DisplayOrder,
			IsActive:         req.IsActive,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, therapy)
	}
}

// TherapyDeleteHandler removes a therapy and every price attached to it.
func (s *Server) TherapyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.repos.Prices.DeleteByTherapy(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		if err := s.repos.Therapies.Delete(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

func queryFlag(r *http.Request, name string) bool {
	flag, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && flag
}
