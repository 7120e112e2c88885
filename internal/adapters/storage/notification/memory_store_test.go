package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "coachdesk/internal/domain/notification"
)

func sample(id string, read bool) domain.Notification {
	return domain.Notification{
		ID:        id,
		Category:  domain.CategorySchedule,
		Title:     "Lesson confirmed",
		Message:   "See you Monday.",
		Priority:  domain.PriorityLow,
		IsRead:    read,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// TestMemoryStore_MarkRead tests read-flag semantics.
func TestMemoryStore_MarkRead(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Save(ctx, sample("n1", false))

	if err := s.MarkRead(ctx, "n1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := s.GetByID(ctx, "n1")
	if !got.IsRead {
		t.Error("expected notification marked read")
	}
	// Idempotent on already-read.
	if err := s.MarkRead(ctx, "n1"); err != nil {
		t.Errorf("expected no-op for already-read, got %v", err)
	}
	// Genuinely absent ids are an error.
	if err := s.MarkRead(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestMemoryStore_MarkAllRead tests the bulk read operation.
func TestMemoryStore_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Save(ctx, sample("n1", false))
	_ = s.Save(ctx, sample("n2", true))
	_ = s.Save(ctx, sample("n3", false))

	if err := s.MarkAllRead(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all, _ := s.List(ctx)
	for _, n := range all {
		if !n.IsRead {
			t.Errorf("notification %s still unread", n.ID)
		}
	}
}

// TestMemoryStore_DeleteIdempotent tests idempotent removal.
func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Save(ctx, sample("n1", false))
	if err := s.Delete(ctx, "n1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete(ctx, "n1"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if _, err := s.GetByID(ctx, "n1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected notification gone, got %v", err)
	}
}
