package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coachdesk/internal/adapters/storage"
	domain "coachdesk/internal/domain/notification"
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

// Save inserts or updates a notification.
// PRE: n is a valid Notification (Validate() returns nil)
// POST: notification is persisted
func (s *SQLiteStore) Save(ctx context.Context, n domain.Notification) error {
	isRead := 0
	if n.IsRead {
		isRead = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notification (id, category, title, message, priority, related_person_id, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   category=excluded.category, title=excluded.title, message=excluded.message,
		   priority=excluded.priority, related_person_id=excluded.related_person_id, is_read=excluded.is_read`,
		n.ID, n.Category, n.Title, n.Message, n.Priority,
		n.RelatedPersonID, isRead, n.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByID retrieves a notification by ID.
// POST: returns the notification or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notification, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category, title, message, priority, related_person_id, is_read, created_at
		 FROM notification WHERE id = ?`, id)
	n, err := scanNotification(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Notification{}, ErrNotFound
	}
	return n, err
}

// List returns every notification.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, title, message, priority, related_person_id, is_read, created_at
		 FROM notification`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead sets the read flag; ErrNotFound for absent ids.
func (s *SQLiteStore) MarkRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notification SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish an already-read row from a genuinely absent id.
		var exists int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM notification WHERE id = ?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// MarkAllRead sets the read flag on every notification.
func (s *SQLiteStore) MarkAllRead(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `UPDATE notification SET is_read = 1 WHERE is_read = 0`)
	return err
}

// Delete removes a notification by ID. Idempotent.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notification WHERE id = ?`, id)
	return err
}

func scanNotification(scan func(dest ...any) error) (domain.Notification, error) {
	var n domain.Notification
	var related sql.NullString
	var isRead int
	var createdStr string
	err := scan(&n.ID, &n.Category, &n.Title, &n.Message, &n.Priority, &related, &isRead, &createdStr)
	if err != nil {
		return n, err
	}
	n.RelatedPersonID = related.String
	n.IsRead = isRead != 0
	if createdStr != "" {
		n.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	}
	return n, nil
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)
