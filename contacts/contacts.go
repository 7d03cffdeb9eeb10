// Package contacts stores enquiries submitted through the public contact
// form, along with the read/notes state admins keep against each one.
package contacts

import (
	"context"
	"time"
)

type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	IsRead *bool
	Notes  *string
}

type Repo interface {
	Create(ctx context.Context, submission *Submission) error
	Update(ctx context.Context, id string, update Update) (*Submission, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, unreadOnly bool) ([]*Submission, error)
}
