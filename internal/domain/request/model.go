package request

import (
	"errors"
	"time"

	"coachdesk/internal/domain/event"
)

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// ValidStatuses contains all valid request statuses.
var ValidStatuses = []string{StatusPending, StatusApproved, StatusDeclined}

// Domain errors
var (
	ErrEmptyStudent    = errors.New("request student ID is required")
	ErrEmptyCoach      = errors.New("request coach ID is required")
	ErrMissingStart    = errors.New("request preferred start is required")
	ErrInvalidDuration = errors.New("request duration must be positive")
	ErrInvalidCategory = errors.New("request category is not recognized")
	ErrAlreadyDecided  = errors.New("request has already been decided")
)

// LessonRequest is a student's ask for a lesson slot. A coach approving the
// request is one of the two ways a scheduled Event comes into existence.
type LessonRequest struct {
	ID              string
	StudentID       string
	CoachID         string
	Category        string // one of event.ValidCategories
	PreferredStart  time.Time
	DurationMinutes int
	Note            string
	Status          string // pending, approved, declined
	CreatedAt       time.Time
	DecidedAt       time.Time
	DecidedBy       string // account ID of the deciding coach
}

// Validate checks if the LessonRequest has valid data.
// PRE: LessonRequest struct is populated
// POST: Returns nil if valid, error otherwise
func (r *LessonRequest) Validate() error {
	if r.StudentID == "" {
		return ErrEmptyStudent
	}
	if r.CoachID == "" {
		return ErrEmptyCoach
	}
	if r.PreferredStart.IsZero() {
		return ErrMissingStart
	}
	if r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if !event.IsValidCategory(r.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// IsPending returns true while the request awaits a decision.
// INVARIANT: Status field is not mutated
func (r *LessonRequest) IsPending() bool {
	return r.Status == StatusPending
}

// Approve marks the request approved.
// PRE: request is pending, deciderID is non-empty
// POST: Status approved, DecidedAt and DecidedBy set
func (r *LessonRequest) Approve(deciderID string, now time.Time) error {
	if !r.IsPending() {
		return ErrAlreadyDecided
	}
	r.Status = StatusApproved
	r.DecidedBy = deciderID
	r.DecidedAt = now
	return nil
}

// Decline marks the request declined. No event is ever created for a
// declined request.
// PRE: request is pending, deciderID is non-empty
// POST: Status declined, DecidedAt and DecidedBy set
func (r *LessonRequest) Decline(deciderID string, now time.Time) error {
	if !r.IsPending() {
		return ErrAlreadyDecided
	}
	r.Status = StatusDeclined
	r.DecidedBy = deciderID
	r.DecidedAt = now
	return nil
}
