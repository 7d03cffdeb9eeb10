// Package prices holds the price list entries attached to therapies.
package prices

import (
	"context"
	"time"
)

type Price struct {
	ID           string    `json:"id"`
	TherapyID    string    `json:"therapy_id"`
	Name         string    `json:"name"`
	Duration     string    `json:"duration"`
	Price        float64   `json:"price"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	TherapyID    *string
	Name         *string
	Duration     *string
	Price        *float64
	Description  *string
	DisplayOrder *int
	IsActive     *bool
}

// Filter narrows List results.
type Filter struct {
	ActiveOnly bool
	TherapyID  string
}

type Repo interface {
	Create(ctx context.Context, price *Price) error
	Update(ctx context.Context, id string, update Update) (*Price, error)
	Delete(ctx context.Context, id string) error
	DeleteByTherapy(ctx context.Context, therapyID string) error
	GetByID(ctx context.Context, id string) (*Price, error)
	List(ctx context.Context, filter Filter) ([]*Price, error)
}
