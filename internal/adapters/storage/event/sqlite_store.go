package event

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"coachdesk/internal/adapters/storage"
	domain "coachdesk/internal/domain/event"
)

// SQLiteStore implements Store using SQLite. Timestamps are stored as
// RFC 3339 strings and rehydrated on read.
type SQLiteStore struct {
	db storage.SQLDB

	mu          sync.Mutex
	subscribers []func()
}

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, open database connection with migrations applied
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts or updates an event. Inserts are assigned a monotonically
// increasing sequence so same-instant events keep insertion order.
// PRE: e is a valid Event (Validate() returns nil)
// POST: event is persisted; subscribers notified
func (s *SQLiteStore) Save(ctx context.Context, e domain.Event) error {
	var seq int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM event`).Scan(&seq); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (id, title, start, duration_minutes, category, status, related_person_id, created_by, created_at, seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, start=excluded.start, duration_minutes=excluded.duration_minutes,
		   category=excluded.category, status=excluded.status, related_person_id=excluded.related_person_id`,
		e.ID, e.Title, e.Start.Format(time.RFC3339), e.DurationMinutes,
		e.Category, e.Status, e.RelatedPersonID, e.CreatedBy,
		e.CreatedAt.Format(time.RFC3339), seq,
	)
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// GetByID retrieves an event by ID.
// PRE: id is non-empty
// POST: returns the event or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, start, duration_minutes, category, status, related_person_id, created_by, created_at
		 FROM event WHERE id = ?`, id)
	e, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, ErrNotFound
	}
	return e, err
}

// Delete removes an event by ID. Idempotent.
// POST: event is removed from storage; subscribers notified
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.notify()
	}
	return nil
}

// ListOnDay returns events on the given calendar date, ascending by start,
// insertion order for same-instant ties.
func (s *SQLiteStore) ListOnDay(ctx context.Context, day time.Time) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, start, duration_minutes, category, status, related_person_id, created_by, created_at
		 FROM event
		 WHERE substr(start, 1, 10) = ?
		 ORDER BY start ASC, seq ASC`, day.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// ListUpcoming returns events with start >= from, ascending, truncated to limit.
func (s *SQLiteStore) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, start, duration_minutes, category, status, related_person_id, created_by, created_at
		 FROM event
		 WHERE start >= ?
		 ORDER BY start ASC, seq ASC
		 LIMIT ?`, from.Format(time.RFC3339), limit)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// Subscribe registers a callback invoked after every mutation.
// PRE: fn is non-nil
func (s *SQLiteStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *SQLiteStore) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func scanEvent(scan func(dest ...any) error) (domain.Event, error) {
	var e domain.Event
	var startStr, createdStr string
	var related, createdBy sql.NullString
	err := scan(&e.ID, &e.Title, &startStr, &e.DurationMinutes,
		&e.Category, &e.Status, &related, &createdBy, &createdStr)
	if err != nil {
		return e, err
	}
	e.RelatedPersonID = related.String
	e.CreatedBy = createdBy.String
	e.Start = parseTime(startStr)
	e.CreatedAt = parseTime(createdStr)
	return e, nil
}

func collectEvents(rows *sql.Rows) ([]domain.Event, error) {
	defer rows.Close()
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)
