package affiliations

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

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

const affiliationColumns = `id, name, logo_url, website_url, display_order, is_active, created_at`

func (r *PostgresRepo) Create(ctx context.Context, affiliation *Affiliation) error {
	if affiliation.ID == "" {
		affiliation.ID = uuid.New().String()
	}

	query := `INSERT INTO affiliations (id, name, logo_url, website_url, display_order, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		affiliation.ID, affiliation.Name, affiliation.LogoURL,
		nullable(affiliation.WebsiteURL), affiliation.DisplayOrder, affiliation.IsActive,
	).Scan(&affiliation.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, update Update) (*Affiliation, error) {
	query := `UPDATE affiliations SET
	              name          = COALESCE($2, name),
	              logo_url      = COALESCE($3, logo_url),
	              website_url   = COALESCE($4, website_url),
	              display_order = COALESCE($5, display_order),
	              is_active     = COALESCE($6, is_active)
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		update.Name, update.LogoURL, update.WebsiteURL, update.DisplayOrder, update.IsActive)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM affiliations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Affiliation, error) {
	query := `SELECT ` + affiliationColumns + ` FROM affiliations WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	affiliation, err := scanAffiliation(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return affiliation, nil
}

func (r *PostgresRepo) List(ctx context.Context, activeOnly bool) ([]*Affiliation, error) {
	query := `SELECT ` + affiliationColumns + ` FROM affiliations`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Affiliation
	for rows.Next() {
		affiliation, err := scanAffiliation(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, affiliation)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAffiliation(row rowScanner) (*Affiliation, error) {
	affiliation := &Affiliation{}
	var websiteURL sql.NullString
	err := row.Scan(&affiliation.ID, &affiliation.Name, &affiliation.LogoURL,
		&websiteURL, &affiliation.DisplayOrder, &affiliation.IsActive, &affiliation.CreatedAt)
	if err != nil {
		return nil, err
	}
	affiliation.WebsiteURL = websiteURL.String
	return affiliation, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
