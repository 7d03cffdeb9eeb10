package server

import (
	"net/http"
)

type presignRequest struct {
	Filename string `json:"filename"`
}

type presignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// UploadPresignHandler hands the admin console a short-lived presigned PUT
// URL; the browser uploads straight to object storage and the returned key
// goes into image_url/logo_url fields.
func (s *Server) UploadPresignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.uploads == nil {
			respondDetail(w, http.StatusNotImplemented, "uploads not configured")
			return
		}

		var req presignRequest
		if err := decodeJSON(r, &req); err != nil || req.Filename == "" {
			respondDetail(w, http.StatusBadRequest, "filename required")
			return
		}

		key, url, err := s.uploads.PresignPut(r.Context(), req.Filename)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, presignResponse{Key: key, UploadURL: url})
	}
}
