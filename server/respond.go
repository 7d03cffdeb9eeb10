package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dovewell/wellness-server/auth"
	"github.com/dovewell/wellness-server/internal/errors"
)

// detailResponse is the error body shape: {"detail": "..."}
type detailResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, detailResponse{Detail: detail})
}

// respondError maps service errors onto HTTP statuses. Sentinels keep their
// exact message; anything unrecognized is logged and collapsed to a 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		respondDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidRefresh),
		errors.Is(err, auth.ErrUserDisabled):
		respondDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrRateLimited):
		respondDetail(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, auth.ErrUserNotFound):
		respondDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errors.ErrAlreadyExists):
		respondDetail(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		respondDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
