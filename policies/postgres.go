package policies

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

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

const policyColumns = `id, title, slug, content, display_order, is_active, created_at, updated_at`

func (r *PostgresRepo) Create(ctx context.Context, policy *Policy) error {
	if policy.ID == "" {
		policy.ID = uuid.New().String()
	}

	query := `INSERT INTO policies (id, title, slug, content, display_order, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		policy.ID, policy.Title, policy.Slug, policy.Content,
		policy.DisplayOrder, policy.IsActive,
	).Scan(&policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, update Update) (*Policy, error) {
	query := `UPDATE policies SET
	              title         = COALESCE($2, title),
	              slug          = COALESCE($3, slug),
	              content       = COALESCE($4, content),
	              display_order = COALESCE($5, display_order),
	              is_active     = COALESCE($6, is_active),
	              updated_at    = now()
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		update.Title, update.Slug, update.Content, update.DisplayOrder, update.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Policy, error) {
	return r.getWhere(ctx, "id", id)
}

func (r *PostgresRepo) GetBySlug(ctx context.Context, slug string) (*Policy, error) {
	return r.getWhere(ctx, "slug", slug)
}

func (r *PostgresRepo) getWhere(ctx context.Context, column, value string) (*Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE ` + column + ` = $1`

	row := r.db.QueryRowContext(ctx, query, value)
	policy, err := scanPolicy(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return policy, nil
}

func (r *PostgresRepo) List(ctx context.Context, activeOnly bool) ([]*Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_order, title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Policy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, policy)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (*Policy, error) {
	policy := &Policy{}
	err := row.Scan(&policy.ID, &policy.Title, &policy.Slug, &policy.Content,
		&policy.DisplayOrder, &policy.IsActive, &policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return policy, nil
}

// isUniqueViolation matches the Postgres unique_violation SQLSTATE (23505)
// without tying the repo to a specific driver error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
