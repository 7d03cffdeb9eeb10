package users

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

func (r *PostgresRepo) Create(ctx context.Context, user *AdminUser) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `INSERT INTO admin_users (id, username, email, password_hash, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsActive).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, update Update) (*AdminUser, error) {
	query := `UPDATE admin_users SET
	              username      = COALESCE($2, username),
	              email         = COALESCE($3, email),
	              password_hash = COALESCE($4, password_hash),
	              is_active     = COALESCE($5, is_active)
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		update.Username, update.Email, update.PasswordHash, update.IsActive)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*AdminUser, error) {
	return r.getWhere(ctx, "id = $1", id)
}

func (r *PostgresRepo) GetByUsername(ctx context.Context, username string) (*AdminUser, error) {
	return r.getWhere(ctx, "username = $1", username)
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	return r.getWhere(ctx, "email = $1", email)
}

func (r *PostgresRepo) getWhere(ctx context.Context, where string, arg any) (*AdminUser, error) {
	query := `SELECT id, username, email, password_hash, is_active, created_at
	          FROM admin_users WHERE ` + where

	user := &AdminUser{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]*AdminUser, error) {
	query := `SELECT id, username, email, password_hash, is_active, created_at
	          FROM admin_users ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*AdminUser
	for rows.Next() {
		user := &AdminUser{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email,
			&user.PasswordHash, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
