package request

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coachdesk/internal/adapters/storage"
	domain "coachdesk/internal/domain/request"
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

const requestColumns = "id, student_id, coach_id, category, preferred_start, duration_minutes, note, status, created_at, decided_at, decided_by"

// GetByID retrieves a LessonRequest by ID.
// PRE: id is non-empty
// POST: returns the request or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.LessonRequest, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM lesson_request WHERE id = ?", id)
	r, err := scanRequest(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LessonRequest{}, ErrNotFound
	}
	return r, err
}

// Save persists a LessonRequest.
// PRE: entity has been validated
// POST: entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, r domain.LessonRequest) error {
	var decidedAt, decidedBy any
	if !r.DecidedAt.IsZero() {
		decidedAt = r.DecidedAt.Format(time.RFC3339)
	}
	if r.DecidedBy != "" {
		decidedBy = r.DecidedBy
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lesson_request (id, student_id, coach_id, category, preferred_start, duration_minutes, note, status, created_at, decided_at, decided_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   category=excluded.category, preferred_start=excluded.preferred_start,
		   duration_minutes=excluded.duration_minutes, note=excluded.note,
		   status=excluded.status, decided_at=excluded.decided_at, decided_by=excluded.decided_by`,
		r.ID, r.StudentID, r.CoachID, r.Category,
		r.PreferredStart.Format(time.RFC3339), r.DurationMinutes, r.Note,
		r.Status, r.CreatedAt.Format(time.RFC3339), decidedAt, decidedBy,
	)
	return err
}

// ListPendingForCoach returns pending requests addressed to a coach,
// oldest first.
func (s *SQLiteStore) ListPendingForCoach(ctx context.Context, coachID string) ([]domain.LessonRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+requestColumns+" FROM lesson_request WHERE coach_id = ? AND status = ? ORDER BY created_at ASC",
		coachID, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

// ListForStudent returns every request a student has submitted, newest first.
func (s *SQLiteStore) ListForStudent(ctx context.Context, studentID string) ([]domain.LessonRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+requestColumns+" FROM lesson_request WHERE student_id = ? ORDER BY created_at DESC",
		studentID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func collectRequests(rows *sql.Rows) ([]domain.LessonRequest, error) {
	defer rows.Close()
	var out []domain.LessonRequest
	for rows.Next() {
		r, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRequest(scan func(dest ...any) error) (domain.LessonRequest, error) {
	var r domain.LessonRequest
	var note, decidedAt, decidedBy sql.NullString
	var startStr, createdStr string
	err := scan(&r.ID, &r.StudentID, &r.CoachID, &r.Category, &startStr,
		&r.DurationMinutes, &note, &r.Status, &createdStr, &decidedAt, &decidedBy)
	if err != nil {
		return domain.LessonRequest{}, err
	}
	r.Note = note.String
	r.DecidedBy = decidedBy.String
	r.PreferredStart, _ = time.Parse(time.RFC3339, startStr)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	if decidedAt.Valid && decidedAt.String != "" {
		r.DecidedAt, _ = time.Parse(time.RFC3339, decidedAt.String)
	}
	return r, nil
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)
