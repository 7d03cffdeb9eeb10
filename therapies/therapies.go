// Package therapies holds the treatments offered by the practice, shown on
// the public site and managed from the admin console.
package therapies

import (
	"context"
	"time"
)

type Therapy struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	FullDescription  string    `json:"full_description,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	Icon             string    `json:"icon,omitempty"`
	DisplayOrder     int       `json:"display_order"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	Name             *string
	ShortDescription *string
	FullDescription  *string
	ImageURL         *string
	Icon             *string
	DisplayOrder     *int
	IsActive         *bool
}

type Repo interface {
	Create(ctx context.Context, therapy *Therapy) error
	Update(ctx context.Context, id string, update Update) (*Therapy, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Therapy, error)
	List(ctx context.Context, activeOnly bool) ([]*Therapy, error)
}
