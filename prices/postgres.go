package prices

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

const priceColumns = `id, therapy_id, name, duration, price, description, display_order, is_active, created_at`

func (r *PostgresRepo) Create(ctx context.Context, price *Price) error {
	if price.ID == "" {
		price.ID = uuid.New().String()
	}

	query := `INSERT INTO prices (id, therapy_id, name, duration, price, description, display_order, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		price.ID, price.TherapyID, price.Name, price.Duration, price.Price,
		sql.NullString{String: price.Description, Valid: price.Description != ""},
		price.DisplayOrder, price.IsActive,
	).Scan(&price.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, update Update) (*Price, error) {
	query := `UPDATE prices SET
	              therapy_id    = COALESCE($2, therapy_id),
	              name          = COALESCE($3, name),
	              duration      = COALESCE($4, duration),
	              price         = COALESCE($5, price),
	              description   = COALESCE($6, description),
	              display_order = COALESCE($7, display_order),
	              is_active     = COALESCE($8, is_active)
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		update.TherapyID, update.Name, update.Duration, update.Price,
		update.Description, update.DisplayOrder, update.IsActive)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) DeleteByTherapy(ctx context.Context, therapyID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prices WHERE therapy_id = $1`, therapyID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Price, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+priceColumns+` FROM prices WHERE id = $1`, id)
	price, err := scanPrice(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return price, nil
}

func (r *PostgresRepo) List(ctx context.Context, filter Filter) ([]*Price, error) {
	query := `SELECT ` + priceColumns + ` FROM prices WHERE 1=1`
	args := []any{}
	if filter.ActiveOnly {
		query += ` AND is_active`
	}
	if filter.TherapyID != "" {
		args = append(args, filter.TherapyID)
		query += fmt.Sprintf(` AND therapy_id = $%d`, len(args))
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Price
	for rows.Next() {
		price, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, price)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrice(row rowScanner) (*Price, error) {
	price := &Price{}
	var description sql.NullString
	err := row.Scan(&price.ID, &price.TherapyID, &price.Name, &price.Duration,
		&price.Price, &description, &price.DisplayOrder, &price.IsActive, &price.CreatedAt)
	if err != nil {
		return nil, err
	}
	price.Description = description.String
	return price, nil
}
