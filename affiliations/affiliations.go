// Package affiliations holds the professional bodies and partner logos shown
// on the public site.
package affiliations

import (
	"context"
	"time"
)

type Affiliation struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url"`
	WebsiteURL   string    `json:"website_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	Name         *string
	LogoURL      *string
	WebsiteURL   *string
	DisplayOrder *int
	IsActive     *bool
}

type Repo interface {
	Create(ctx context.Context, affiliation *Affiliation) error
	Update(ctx context.Context, id string, update Update) (*Affiliation, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Affiliation, error)
	List(ctx context.Context, activeOnly bool) ([]*Affiliation, error)
}
