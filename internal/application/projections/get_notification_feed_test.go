package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"coachdesk/internal/domain/notification"
	"coachdesk/internal/domain/person"
)

// mockFeedNotificationStore implements FeedNotificationStore.
type mockFeedNotificationStore struct {
	notifications []notification.Notification
}

func (m *mockFeedNotificationStore) List(_ context.Context) ([]notification.Notification, error) {
	return m.notifications, nil
}

// mockFeedPersonStore implements FeedPersonStore.
type mockFeedPersonStore struct {
	people map[string]person.Person
}

func (m *mockFeedPersonStore) GetByID(_ context.Context, id string) (person.Person, error) {
	p, ok := m.people[id]
	if !ok {
		return person.Person{}, errors.New("not found")
	}
	return p, nil
}

func feedFixture() *mockFeedNotificationStore {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return &mockFeedNotificationStore{notifications: []notification.Notification{
		{
			ID: "n-1", Category: notification.CategorySchedule,
			Title: "Lesson moved", Message: "Anatomy moved to 11:00.",
			Priority: notification.PriorityMedium, CreatedAt: base,
		},
		{
			ID: "n-2", Category: notification.CategorySession,
			Title: "Session ended", Message: "Transcript available.",
			Priority: notification.PriorityLow, IsRead: true,
			RelatedPersonID: "student-001", CreatedAt: base.Add(2 * time.Hour),
		},
		{
			ID: "n-3", Category: notification.CategoryRequest,
			Title: "New lesson request", Message: "A student requested a lesson slot.",
			Priority: notification.PriorityHigh, RelatedPersonID: "student-001",
			CreatedAt: base.Add(time.Hour),
		},
	}}
}

func TestQueryGetNotificationFeed_SortedDescending(t *testing.T) {
	items, err := QueryGetNotificationFeed(context.Background(),
		GetNotificationFeedQuery{}, GetNotificationFeedDeps{NotificationStore: feedFixture()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Errorf("feed not sorted descending at index %d", i)
		}
	}
	if items[0].ID != "n-2" || items[2].ID != "n-1" {
		t.Errorf("unexpected order: %s, %s, %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestQueryGetNotificationFeed_UnreadOnly(t *testing.T) {
	items, err := QueryGetNotificationFeed(context.Background(),
		GetNotificationFeedQuery{UnreadOnly: true},
		GetNotificationFeedDeps{NotificationStore: feedFixture()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 unread items, got %d", len(items))
	}
	for _, it := range items {
		if it.IsRead {
			t.Errorf("read notification %s leaked into unread-only view", it.ID)
		}
	}
}

func TestQueryGetNotificationFeed_CategoryFilter(t *testing.T) {
	items, err := QueryGetNotificationFeed(context.Background(),
		GetNotificationFeedQuery{Category: notification.CategoryRequest},
		GetNotificationFeedDeps{NotificationStore: feedFixture()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "n-3" {
		t.Errorf("expected only the request notification, got %+v", items)
	}
}

func TestQueryGetNotificationFeed_SearchByPersonName(t *testing.T) {
	people := &mockFeedPersonStore{people: map[string]person.Person{
		"student-001": {ID: "student-001", Name: "Jamie Lee", Role: person.RoleStudent},
	}}

	items, err := QueryGetNotificationFeed(context.Background(),
		GetNotificationFeedQuery{SearchText: "jamie"},
		GetNotificationFeedDeps{NotificationStore: feedFixture(), PersonStore: people})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both notifications related to Jamie match, regardless of their text.
	if len(items) != 2 {
		t.Fatalf("expected 2 items matching the person name, got %d", len(items))
	}
	for _, it := range items {
		if it.RelatedPersonName != "Jamie Lee" {
			t.Errorf("expected resolved name, got %q", it.RelatedPersonName)
		}
	}
}

func TestQueryGetNotificationFeed_SearchIsCaseInsensitive(t *testing.T) {
	items, err := QueryGetNotificationFeed(context.Background(),
		GetNotificationFeedQuery{SearchText: "LESSON MOVED"},
		GetNotificationFeedDeps{NotificationStore: feedFixture()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "n-1" {
		t.Errorf("expected case-insensitive title match, got %+v", items)
	}
}
