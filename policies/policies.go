// Package policies holds the practice's published policy documents
// (cancellation, privacy and so on), addressable by a unique slug.
package policies

import (
	"context"
	"time"
)

type Policy struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Content      string    `json:"content"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	Title        *string
	Slug         *string
	Content      *string
	DisplayOrder *int
	IsActive     *bool
}

type Repo interface {
	Create(ctx context.Context, policy *Policy) error
	Update(ctx context.Context, id string, update Update) (*Policy, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Policy, error)
	GetBySlug(ctx context.Context, slug string) (*Policy, error)
	List(ctx context.Context, activeOnly bool) ([]*Policy, error)
}
