package event

import (
	"context"
	"errors"
	"time"

	domain "coachdesk/internal/domain/event"
)

// ErrNotFound is returned when an event id does not exist.
var ErrNotFound = errors.New("event not found")

// Store persists Event state. Mutations notify subscribers so dashboards can
// re-render their grids instead of polling.
type Store interface {
	// Save inserts or updates an event by ID.
	Save(ctx context.Context, e domain.Event) error
	// GetByID returns the event or ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.Event, error)
	// Delete removes an event; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
	// ListOnDay returns events whose start falls on the same calendar date
	// as day (time of day ignored), ascending by start time; events with the
	// same start keep insertion order.
	ListOnDay(ctx context.Context, day time.Time) ([]domain.Event, error)
	// ListUpcoming returns events with start >= from, ascending by start,
	// truncated to limit. limit <= 0 means no truncation.
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error)
	// Subscribe registers a callback invoked after every mutation.
	Subscribe(fn func())
}
