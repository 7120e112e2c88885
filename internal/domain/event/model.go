package event

import (
	"errors"
	"time"
)

// Category constants: the closed set of event categories.
const (
	CategoryLesson       = "lesson"
	CategoryExam         = "exam"
	CategoryConsultation = "consultation"
	CategoryGroup        = "group"
	CategoryOnline       = "online"
	CategoryReview       = "review"
	CategoryPractice     = "practice"
)

// Status constants.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Max length constants.
const (
	MaxTitleLength = 200
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{
	CategoryLesson, CategoryExam, CategoryConsultation,
	CategoryGroup, CategoryOnline, CategoryReview, CategoryPractice,
}

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{
	StatusScheduled, StatusConfirmed, StatusPending,
	StatusCompleted, StatusCancelled,
}

// Domain errors
var (
	ErrEmptyTitle      = errors.New("event title cannot be empty")
	ErrTitleTooLong    = errors.New("event title cannot exceed 200 characters")
	ErrInvalidDuration = errors.New("event duration must be positive")
	ErrInvalidCategory = errors.New("event category must be one of: lesson, exam, consultation, group, online, review, practice")
	ErrInvalidStatus   = errors.New("event status must be one of: scheduled, confirmed, pending, completed, cancelled")
	ErrMissingStart    = errors.New("event start time is required")
)

// Event represents a scheduled calendar item on a dashboard: a lesson, exam,
// consultation, group session, online class, review, or practice slot.
// Removal is always an explicit action; events are never implicitly deleted.
// INVARIANT: DurationMinutes > 0; Category and Status are in the valid sets.
type Event struct {
	ID              string
	Title           string
	Start           time.Time
	DurationMinutes int
	Category        string
	Status          string
	RelatedPersonID string // optional coach or student this event concerns
	CreatedBy       string // account ID
	CreatedAt       time.Time
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if e.Title == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if e.Start.IsZero() {
		return ErrMissingStart
	}
	if e.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if !IsValidCategory(e.Category) {
		return ErrInvalidCategory
	}
	if !IsValidStatus(e.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// End returns the instant the event finishes.
// PRE: DurationMinutes > 0
// POST: returns Start + DurationMinutes
func (e *Event) End() time.Time {
	return e.Start.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// IsCancelled returns true if the event has been cancelled.
// INVARIANT: Status field is not mutated
func (e *Event) IsCancelled() bool {
	return e.Status == StatusCancelled
}

// IsValidCategory reports whether c is a recognized category.
func IsValidCategory(c string) bool {
	for _, v := range ValidCategories {
		if v == c {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a recognized status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
