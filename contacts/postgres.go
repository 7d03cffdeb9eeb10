package contacts

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

const submissionColumns = `id, name, email, phone, message, is_read, notes, created_at`

func (r *PostgresRepo) Create(ctx context.Context, submission *Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}

	query := `INSERT INTO contact_submissions (id, name, email, phone, message)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		submission.ID, submission.Name, submission.Email,
		nullable(submission.Phone), submission.Message,
	).Scan(&submission.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, update Update) (*Submission, error) {
	query := `UPDATE contact_submissions SET
	              is_read = COALESCE($2, is_read),
	              notes   = COALESCE($3, notes)
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, update.IsRead, update.Notes)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM contact_submissions WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	submission, err := scanSubmission(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return submission, nil
}

func (r *PostgresRepo) List(ctx context.Context, unreadOnly bool) ([]*Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM contact_submissions`
	if unreadOnly {
		query += ` WHERE NOT is_read`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, submission)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*Submission, error) {
	submission := &Submission{}
	var phone, notes sql.NullString
	err := row.Scan(&submission.ID, &submission.Name, &submission.Email,
		&phone, &submission.Message, &submission.IsRead, &notes, &submission.CreatedAt)
	if err != nil {
		return nil, err
	}
	submission.Phone = phone.String
	submission.Notes = notes.String
	return submission, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
