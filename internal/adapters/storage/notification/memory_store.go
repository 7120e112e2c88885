package notification

import (
	"context"
	"sync"

	domain "coachdesk/internal/domain/notification"
)

// MemoryStore implements Store with an in-memory map.
type MemoryStore struct {
	mu            sync.RWMutex
	notifications map[string]domain.Notification
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notifications: make(map[string]domain.Notification)}
}

// Save inserts or updates a notification by ID.
// PRE: n.ID is non-empty
func (s *MemoryStore) Save(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = n
	return nil
}

// GetByID returns the notification or ErrNotFound.
func (s *MemoryStore) GetByID(_ context.Context, id string) (domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return domain.Notification{}, ErrNotFound
	}
	return n, nil
}

// List returns every notification, in no guaranteed order.
func (s *MemoryStore) List(_ context.Context) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, n)
	}
	return out, nil
}

// MarkRead sets the read flag. Idempotent for already-read notifications;
// ErrNotFound for genuinely absent ids.
func (s *MemoryStore) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return ErrNotFound
	}
	if !n.IsRead {
		n.IsRead = true
		s.notifications[id] = n
	}
	return nil
}

// MarkAllRead sets the read flag on every held notification.
func (s *MemoryStore) MarkAllRead(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.notifications {
		if !n.IsRead {
			n.IsRead = true
			s.notifications[id] = n
		}
	}
	return nil
}

// Delete removes a notification. Idempotent.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notifications, id)
	return nil
}

// Compile-time check that *MemoryStore satisfies Store.
var _ Store = (*MemoryStore)(nil)
