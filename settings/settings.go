// Package settings stores the single site-wide settings document. Reads fall
// back to sensible defaults when nothing has been saved yet.
package settings

import (
	"context"
	"time"
)

// DocumentID is the fixed key of the singleton settings row.
const DocumentID = "site_settings"

type SocialLinks struct {
	FacebookURL  string `json:"facebook_url,omitempty"`
	InstagramURL string `json:"instagram_url,omitempty"`
	TwitterURL   string `json:"twitter_url,omitempty"`
	LinkedInURL  string `json:"linkedin_url,omitempty"`
}

type Settings struct {
	ID           string      `json:"id"`
	BusinessName string      `json:"business_name"`
	Tagline      string      `json:"tagline"`
	Email        string      `json:"email,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	SocialLinks  SocialLinks `json:"social_links"`
	UpdatedAt    time.Time   `json:"updated_at,omitempty"`
}

// Defaults returns the settings served before any admin has saved the document.
func Defaults() *Settings {
	return &Settings{
		ID:           DocumentID,
		BusinessName: "White Dove Wellness",
		Tagline:      "Holistic Therapies",
		UpdatedAt:    time.Now().UTC(),
	}
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	BusinessName *string
	Tagline      *string
	Email        *string
	Phone        *string
	Address      *string
	SocialLinks  *SocialLinks
}

type Repo interface {
	// Get returns the stored settings, or errors.ErrNotFound when the
	// document has never been saved.
	Get(ctx context.Context) (*Settings, error)
	// Upsert applies the partial update, creating the document from
	// Defaults first if it does not exist, and returns the result.
	Upsert(ctx context.Context, update Update) (*Settings, error)
}
