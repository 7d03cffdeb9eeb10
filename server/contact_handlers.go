package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dovewell/wellness-server/contacts"
	"github.com/dovewell/wellness-server/internal/utils"
)

type contactSubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type contactNotesRequest struct {
	Notes string `json:"notes"`
}

// ContactSubmitHandler accepts a public contact-form submission and fires
// the email notification in the background; mail failures never surface to
// the submitter.
func (s *Server) ContactSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactSubmitRequest
		if err := decodeJSON(r, &req); err != nil || req.Name == "" || req.Email == "" || req.Message == "" {
			respondDetail(w, http.StatusBadRequest, "name, email and message required")
			return
		}

		submission := &contacts.Submission{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		}
		if err := s.repos.Contacts.Create(r.Context(), submission); err != nil {
			respondError(w, err)
			return
		}

		log.Info().Str("email", req.Email).Msg("new contact submission")

		if s.mailer != nil {
			go func() {
				if err := s.mailer.SendContactNotification(req.Name, req.Email, req.Phone, req.Message); err != nil {
					log.Error().Err(err).Msg("contact notification failed")
				}
			}()
		}

		respondJSON(w, http.StatusCreated, submission)
	}
}

func (s *Server) ContactsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Contacts.List(r.Context(), queryFlag(r, "unread_only"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) ContactGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission, err := s.repos.Contacts.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, submission)
	}
}

func (s *Server) ContactMarkReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := s.repos.Contacts.Update(r.Context(), r.PathValue("id"), contacts.Update{
			IsRead: utils.Ptr(true),
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, messageResponse{Message: "marked as read"})
	}
}

func (s *Server) ContactUpdateNotesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactNotesRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		submission, err := s.repos.Contacts.Update(r.Context(), r.PathValue("id"), contacts.Update{
			Notes: &req.Notes,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, submission)
	}
}

func (s *Server) ContactDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Contacts.Delete(r.Context(), r.PathValue("id")); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
