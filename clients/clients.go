// Package clients manages the practice's client records and the session
// notes kept against them. Everything in here is admin-only.
package clients

import (
	"context"
	"time"
)

type Client struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	DateOfBirth  string    `json:"date_of_birth,omitempty"`
	MedicalNotes string    `json:"medical_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Note is a dated session note attached to a client record.
type Note struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Note        string    `json:"note"`
	SessionDate string    `json:"session_date,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Update carries a partial client update; nil fields are left unchanged.
type Update struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	Address      *string
	DateOfBirth  *string
	MedicalNotes *string
}

// NoteUpdate carries a partial note update; nil fields are left unchanged.
type NoteUpdate struct {
	Note        *string
	SessionDate *string
}

type Repo interface {
	Create(ctx context.Context, client *Client) error
	Update(ctx context.Context, id string, update Update) (*Client, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Client, error)
	// List returns clients sorted by last then first name. A non-empty
	// search term matches name, email and phone case-insensitively.
	List(ctx context.Context, search string) ([]*Client, error)

	CreateNote(ctx context.Context, note *Note) error
	UpdateNote(ctx context.Context, id string, update NoteUpdate) (*Note, error)
	DeleteNote(ctx context.Context, id string) error
	GetNoteByID(ctx context.Context, id string) (*Note, error)
	// ListNotes returns a client's notes, newest first.
	ListNotes(ctx context.Context, clientID string) ([]*Note, error)
}
