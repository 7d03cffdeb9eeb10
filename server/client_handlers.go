package server

import (
	"net/http"

	"github.com/dovewell/wellness-server/clients"
)

type clientRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	DateOfBirth  *string `json:"date_of_birth"`
	MedicalNotes *string `json:"medical_notes"`
}

type clientNoteRequest struct {
	Note        *string `json:"note"`
	SessionDate *string `json:"session_date"`
}

func (s *Server) ClientsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Clients.List(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) ClientGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := s.repos.Clients.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, client)
	}
}

func (s *Server) ClientCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clientRequest
		if err := decodeJSON(r, &req); err != nil || req.FirstName == nil || req.LastName == nil {
			respondDetail(w, http.StatusBadRequest, "first_name and last_name required")
			return
		}

		client := &clients.Client{
			FirstName: *req.FirstName,
			LastName:  *req.LastName,
		}
		if req.Email != nil {
			client.Email = *req.Email
		}
		if req.Phone != nil {
			client.Phone = *req.Phone
		}
		if req.Address != nil {
			client.Address = *req.Address
		}
		if req.DateOfBirth != nil {
			client.DateOfBirth = *req.DateOfBirth
		}
		if req.MedicalNotes != nil {
			client.MedicalNotes = *req.MedicalNotes
		}

		if err := s.repos.Clients.Create(r.Context(), client); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, client)
	}
}

func (s *Server) ClientUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clientRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		client, err := s.repos.Clients.Update(r.Context(), r.PathValue("id"), clients.Update{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Phone:        req.Phone,
			Address:      req.Address,
			DateOfBirth:  req.DateOfBirth,
			MedicalNotes: req.MedicalNotes,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, client)
	}
}

// ClientDeleteHandler removes a client together with their session notes.
func (s *Server) ClientDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Clients.Delete(r.Context(), r.PathValue("id")); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

func (s *Server) ClientNotesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// 404 for an unknown client rather than an empty list
		clientID := r.PathValue("id")
		if _, err := s.repos.Clients.GetByID(r.Context(), clientID); err != nil {
			respondError(w, err)
			return
		}

		notes, err := s.repos.Clients.ListNotes(r.Context(), clientID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, notes)
	}
}

func (s *Server) ClientNoteCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clientNoteRequest
		if err := decodeJSON(r, &req); err != nil || req.Note == nil || *req.Note == "" {
			respondDetail(w, http.StatusBadRequest, "note required")
			return
		}

		note := &clients.Note{
			ClientID:  r.PathValue("id"),
			Note:      *req.Note,
			CreatedBy: UsernameFromContext(r.Context()),
		}
		if req.SessionDate != nil {
			note.SessionDate = *req.SessionDate
		}

		if err := s.repos.Clients.CreateNote(r.Context(), note); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, note)
	}
}

func (s *Server) ClientNoteUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clientNoteRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		note, err := s.repos.Clients.UpdateNote(r.Context(), r.PathValue("noteId"), clients.NoteUpdate{
			Note:        req.Note,
			SessionDate: req.SessionDate,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, note)
	}
}

func (s *Server) ClientNoteDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Clients.DeleteNote(r.Context(), r.PathValue("noteId")); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
