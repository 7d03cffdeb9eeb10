package server

import (
	"net/http"

	"github.com/dovewell/wellness-server/prices"
)

type priceRequest struct {
	TherapyID    *string  `json:"therapy_id"`
	Name         *string  `json:"name"`
	Duration     *string  `json:"duration"`
	Price        *float64 `json:"price"`
	Description  *string  `json:"description"`
	DisplayOrder *int     `json:"display_order"`
	IsActive     *bool    `json:"is_active"`
}

func (s *Server) PricesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := prices.Filter{
			ActiveOnly: queryFlag(r, "active_only"),
			TherapyID:  r.URL.Query().Get("therapy_id"),
		}
		list, err := s.repos.Prices.List(r.Context(), filter)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) PriceCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req priceRequest
		if err := decodeJSON(r, &req); err != nil ||
			req.TherapyID == nil || req.Name == nil || req.Duration == nil || req.Price == nil {
			respondDetail(w, http.StatusBadRequest, "therapy_id, name, duration and price required")
			return
		}

		// The price must hang off an existing therapy
		if _, err := s.repos.Therapies.GetByID(r.Context(), *req.TherapyID); err != nil {
			respondError(w, err)
			return
		}

		price := &prices.Price{
			TherapyID: *req.TherapyID,
			Name:      *req.Name,
			Duration:  *req.Duration,
			Price:     *req.Price,
			IsActive:  true,
		}
		if req.Description != nil {
			price.Description = *req.Description
		}
		if req.DisplayOrder != nil {
			price.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			price.IsActive = *req.IsActive
		}

		if err := s.repos.Prices.Create(r.Context(), price); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, price)
	}
}

func (s *Server) PriceUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req priceRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		price, err := s.repos.Prices.Update(r.Context(), r.PathValue("id"), prices.Update{
			TherapyID:    req.TherapyID,
			Name:         req.Name,
			Duration:     req.Duration,
			Price:        req.Price,
			Description:  req.Description,
			DisplayOrder: req.DisplayOrder,
			IsActive:     req.IsActive,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, price)
	}
}

func (s *Server) PriceDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Prices.Delete(r.Context(), r.PathValue("id")); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
