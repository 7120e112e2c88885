package event

import (
	"context"
	"sort"
	"sync"
	"time"

	"coachdesk/internal/domain/calendar"
	domain "coachdesk/internal/domain/event"
)

// MemoryStore implements Store with an in-memory map. It backs the dashboard
// screens directly: every operation completes synchronously within the
// calling turn, and subscribers are notified after each mutation.
type MemoryStore struct {
	mu          sync.RWMutex
	events      map[string]domain.Event
	order       map[string]int // insertion sequence, for stable same-instant ordering
	nextSeq     int
	subscribers []func()
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events: make(map[string]domain.Event),
		order:  make(map[string]int),
	}
}

// Save inserts or updates an event by ID. An update keeps the event's
// original insertion sequence.
// PRE: e.ID is non-empty
// POST: event stored; subscribers notified
func (s *MemoryStore) Save(_ context.Context, e domain.Event) error {
	s.mu.Lock()
	if _, exists := s.events[e.ID]; !exists {
		s.order[e.ID] = s.nextSeq
		s.nextSeq++
	}
	s.events[e.ID] = e
	s.mu.Unlock()
	s.notify()
	return nil
}

// GetByID returns the event or ErrNotFound.
func (s *MemoryStore) GetByID(_ context.Context, id string) (domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return domain.Event{}, ErrNotFound
	}
	return e, nil
}

// Delete removes an event. Removal is idempotent: deleting an absent id is
// not an error, which keeps bulk dashboard operations simple.
// POST: event absent; subscribers notified only if something was removed
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	_, existed := s.events[id]
	delete(s.events, id)
	delete(s.order, id)
	s.mu.Unlock()
	if existed {
		s.notify()
	}
	return nil
}

// ListOnDay returns the events of one calendar date, ascending by start,
// insertion order for same-instant ties.
func (s *MemoryStore) ListOnDay(_ context.Context, day time.Time) ([]domain.Event, error) {
	s.mu.RLock()
	var out []domain.Event
	for _, e := range s.events {
		if calendar.SameDate(e.Start, day) {
			out = append(out, e)
		}
	}
	seq := make(map[string]int, len(out))
	for _, e := range out {
		seq[e.ID] = s.order[e.ID]
	}
	s.mu.RUnlock()

	s.sortAscending(out, seq)
	return out, nil
}

// ListUpcoming returns events with start >= from, ascending, truncated to limit.
func (s *MemoryStore) ListUpcoming(_ context.Context, from time.Time, limit int) ([]domain.Event, error) {
	s.mu.RLock()
	var out []domain.Event
	for _, e := range s.events {
		if !e.Start.Before(from) {
			out = append(out, e)
		}
	}
	seq := make(map[string]int, len(out))
	for _, e := range out {
		seq[e.ID] = s.order[e.ID]
	}
	s.mu.RUnlock()

	s.sortAscending(out, seq)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Subscribe registers a callback invoked after every mutation.
// PRE: fn is non-nil
func (s *MemoryStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *MemoryStore) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *MemoryStore) sortAscending(events []domain.Event, seq map[string]int) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return seq[events[i].ID] < seq[events[j].ID]
		}
		return events[i].Start.Before(events[j].Start)
	})
}

// Compile-time check that *MemoryStore satisfies Store.
var _ Store = (*MemoryStore)(nil)
