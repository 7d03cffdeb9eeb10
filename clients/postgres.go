package clients

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

const clientColumns = `id, first_name, last_name, email, phone, address, date_of_birth, medical_notes, created_at, updated_at`

func (r *PostgresRepo) Create(ctx context.Context, client *Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}

	query := `INSERT INTO clients (id, first_name, last_name, email, phone, address, date_of_birth, medical_notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		client.ID, client.FirstName, client.LastName,
		nullable(client.Email), nullable(client.Phone), nullable(client.Address),
		nullable(client.DateOfBirth), nullable(client.MedicalNotes),
	).Scan(&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, update Update) (*Client, error) {
	query := `UPDATE clients SET
	              first_name    = COALESCE($2, first_name),
	              last_name     = COALESCE($3, last_name),
	              email         = COALESCE($4, email),
	              phone         = COALESCE($5, phone),
	              address       = COALESCE($6, address),
	              date_of_birth = COALESCE($7, date_of_birth),
	              medical_notes = COALESCE($8, medical_notes),
	              updated_at    = now()
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		update.FirstName, update.LastName, update.Email, update.Phone,
		update.Address, update.DateOfBirth, update.MedicalNotes)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	client, err := scanClient(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return client, nil
}

func (r *PostgresRepo) List(ctx context.Context, search string) ([]*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	var args []any
	if search != "" {
		query += ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, client)
	}
	return result, rows.Err()
}

const noteColumns = `id, client_id, note, session_date, created_by, created_at`

func (r *PostgresRepo) CreateNote(ctx context.Context, note *Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}

	// FK rejects notes for unknown clients; surface that as not-found.
	if _, err := r.GetByID(ctx, note.ClientID); err != nil {
		return err
	}

	query := `INSERT INTO client_notes (id, client_id, note, session_date, created_by)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.ClientID, note.Note,
		nullable(note.SessionDate), nullable(note.CreatedBy),
	).Scan(&note.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepo) UpdateNote(ctx context.Context, id string, update NoteUpdate) (*Note, error) {
	query := `UPDATE client_notes SET
	              note         = COALESCE($2, note),
	              session_date = COALESCE($3, session_date)
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, update.Note, update.SessionDate)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrNotFound
	}

	return r.GetNoteByID(ctx, id)
}

func (r *PostgresRepo) DeleteNote(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM client_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetNoteByID(ctx context.Context, id string) (*Note, error) {
	query := `SELECT ` + noteColumns + ` FROM client_notes WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	note, err := scanNote(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepo) ListNotes(ctx context.Context, clientID string) ([]*Note, error) {
	query := `SELECT ` + noteColumns + ` FROM client_notes WHERE client_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, note)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*Client, error) {
	client := &Client{}
	var email, phone, address, dob, medicalNotes sql.NullString
	err := row.Scan(&client.ID, &client.FirstName, &client.LastName,
		&email, &phone, &address, &dob, &medicalNotes,
		&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, err
	}
	client.Email = email.String
	client.Phone = phone.String
	client.Address = address.String
	client.DateOfBirth = dob.String
	client.MedicalNotes = medicalNotes.String
	return client, nil
}

func scanNote(row rowScanner) (*Note, error) {
	note := &Note{}
	var sessionDate, createdBy sql.NullString
	err := row.Scan(&note.ID, &note.ClientID, &note.Note,
		&sessionDate, &createdBy, &note.CreatedAt)
	if err != nil {
		return nil, err
	}
	note.SessionDate = sessionDate.String
	note.CreatedBy = createdBy.String
	return note, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
