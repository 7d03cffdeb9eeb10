package therapies

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

const therapyColumns = `id, name, short_description, full_description, image_url, icon, display_order, is_active, created_at`

func (r *PostgresRepo) Create(ctx context.Context, therapy *Therapy) error {
	if therapy.ID == "" {
		therapy.ID = uuid.New().String()
	}

	query := `INSERT INTO therapies (id, name, short_description, full_description, image_url, icon, display_order, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		therapy.ID, therapy.Name, therapy.ShortDescription, nullable(therapy.FullDescription),
		nullable(therapy.ImageURL), nullable(therapy.Icon), therapy.DisplayOrder, therapy.IsActive,
	).Scan(&therapy.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, update Update) (*Therapy, error) {
	query := `UPDATE therapies SET
	              name              = COALESCE($2, name),
	              short_description = COALESCE($3, short_description),
	              full_description  = COALESCE($4, full_description),
	              image_url         = COALESCE($5, image_url),
	              icon              = COALESCE($6, icon),
	              display_order     = COALESCE($7, display_order),
	              is_active         = COALESCE($8, is_active)
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		update.Name, update.ShortDescription, update.FullDescription,
		update.ImageURL, update.Icon, update.DisplayOrder, update.IsActive)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM therapies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Therapy, error) {
	query := `SELECT ` + therapyColumns + ` FROM therapies WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	therapy, err := scanTherapy(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return therapy, nil
}

func (r *PostgresRepo) List(ctx context.Context, activeOnly bool) ([]*Therapy, error) {
	query := `SELECT ` + therapyColumns + ` FROM therapies`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Therapy
	for rows.Next() {
		therapy, err := scanTherapy(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, therapy)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTherapy(row rowScanner) (*Therapy, error) {
	therapy := &Therapy{}
	var fullDescription, imageURL, icon sql.NullString
	err := row.Scan(&therapy.ID, &therapy.Name, &therapy.ShortDescription,
		&fullDescription, &imageURL, &icon,
		&therapy.DisplayOrder, &therapy.IsActive, &therapy.CreatedAt)
	if err != nil {
		return nil, err
	}
	therapy.FullDescription = fullDescription.String
	therapy.ImageURL = imageURL.String
	therapy.Icon = icon.String
	return therapy, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
