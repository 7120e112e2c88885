package person

import (
	"context"
	"database/sql"
	"errors"

	"coachdesk/internal/adapters/storage"
	domain "coachdesk/internal/domain/person"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, open database connection with migrations applied
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Person by ID.
// PRE: id is non-empty
// POST: returns the person or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, email, role, status FROM person WHERE id = ?`, id)
	p, err := scanPerson(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Person{}, ErrNotFound
	}
	return p, err
}

// Save persists a Person.
// PRE: entity has been validated
// POST: entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, p domain.Person) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO person (id, account_id, name, email, role, status)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   account_id=excluded.account_id, name=excluded.name, email=excluded.email,
		   role=excluded.role, status=excluded.status`,
		p.ID, p.AccountID, p.Name, p.Email, p.Role, p.Status,
	)
	return err
}

// Delete removes a Person. Idempotent.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM person WHERE id = ?`, id)
	return err
}

// ListByRole returns the directory entries with the given role, by name.
// PRE: role is "coach" or "student"
func (s *SQLiteStore) ListByRole(ctx context.Context, role string) ([]domain.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, name, email, role, status FROM person WHERE role = ? ORDER BY name ASC`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Person
	for rows.Next() {
		p, err := scanPerson(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPerson(scan func(dest ...any) error) (domain.Person, error) {
	var p domain.Person
	var accountID sql.NullString
	err := scan(&p.ID, &accountID, &p.Name, &p.Email, &p.Role, &p.Status)
	if err != nil {
		return domain.Person{}, err
	}
	p.AccountID = accountID.String
	return p, nil
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)
