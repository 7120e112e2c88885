package notification

import (
	"context"
	"errors"

	domain "coachdesk/internal/domain/notification"
)

// ErrNotFound is returned when a notification id does not exist.
var ErrNotFound = errors.New("notification not found")

// Store persists Notification state. The feed itself (filtering, ordering)
// is a projection over List; the store only holds records and read flags.
type Store interface {
	// Save inserts or updates a notification by ID.
	Save(ctx context.Context, n domain.Notification) error
	// GetByID returns the notification or ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.Notification, error)
	// List returns every notification, in no guaranteed order.
	List(ctx context.Context) ([]domain.Notification, error)
	// MarkRead sets IsRead on one notification. Marking an already-read
	// notification is a no-op; an absent id is ErrNotFound.
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead sets IsRead on every notification currently held.
	MarkAllRead(ctx context.Context) error
	// Delete removes a notification; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
