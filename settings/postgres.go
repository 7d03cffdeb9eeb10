package settings

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/storage"
)

type PostgresRepo struct {
	db storage.DBTX
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(db storage.DBTX) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const settingsColumns = `id, business_name, tagline, email, phone, address,
	facebook_url, instagram_url, twitter_url, linkedin_url, updated_at`

func (r *PostgresRepo) Get(ctx context.Context) (*Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM site_settings WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, DocumentID)
	stored, err := scanSettings(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return stored, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, update Update) (*Settings, error) {
	base, err := r.Get(ctx)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		base = Defaults()
	}

	if update.BusinessName != nil {
		base.BusinessName = *update.BusinessName
	}
	if update.Tagline != nil {
		base.Tagline = *update.Tagline
	}
	if update.Email != nil {
		base.Email = *update.Email
	}
	if update.Phone != nil {
		base.Phone = *update.Phone
	}
	if update.Address != nil {
		base.Address = *update.Address
	}
	if update.SocialLinks != nil {
		base.SocialLinks = *update.SocialLinks
	}

	query := `INSERT INTO site_settings
	              (id, business_name, tagline, email, phone, address,
	               facebook_url, instagram_url, twitter_url, linkedin_url, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
	          ON CONFLICT (id) DO UPDATE SET
	              business_name = EXCLUDED.business_name,
	              tagline       = EXCLUDED.tagline,
	              email         = EXCLUDED.email,
	              phone         = EXCLUDED.phone,
	              address       = EXCLUDED.address,
	              facebook_url  = EXCLUDED.facebook_url,
	              instagram_url = EXCLUDED.instagram_url,
	              twitter_url   = EXCLUDED.twitter_url,
	              linkedin_url  = EXCLUDED.linkedin_url,
	              updated_at    = now()
	          RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		DocumentID, base.BusinessName, base.Tagline,
		nullable(base.Email), nullable(base.Phone), nullable(base.Address),
		nullable(base.SocialLinks.FacebookURL), nullable(base.SocialLinks.InstagramURL),
		nullable(base.SocialLinks.TwitterURL), nullable(base.SocialLinks.LinkedInURL),
	).Scan(&base.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return base, nil
}

func scanSettings(row interface{ Scan(dest ...any) error }) (*Settings, error) {
	stored := &Settings{}
	var email, phone, address, facebook, instagram, twitter, linkedin sql.NullString
	err := row.Scan(&stored.ID, &stored.BusinessName, &stored.Tagline,
		&email, &phone, &address, &facebook, &instagram, &twitter, &linkedin,
		&stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	stored.Email = email.String
	stored.Phone = phone.String
	stored.Address = address.String
	stored.SocialLinks = SocialLinks{
		FacebookURL:  facebook.String,
		InstagramURL: instagram.String,
		TwitterURL:   twitter.String,
		LinkedInURL:  linkedin.String,
	}
	return stored, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
