package session_test

import (
	"errors"
	"testing"
	"time"

	store "coachdesk/internal/adapters/storage/session"
	domain "coachdesk/internal/domain/session"
)

var fixedNow = time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

func startedSession(t *testing.T, id, coachID string) *domain.Session {
	t.Helper()
	s, err := domain.New(id, coachID, "student-1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Start("https://meet.example/"+id, "msg-"+id, fixedNow); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestRegistryAddAndGet(t *testing.T) {
	r := store.NewRegistry()
	s := startedSession(t, "sess-1", "coach-1")

	if err := r.Add(s); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := r.Get("sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "sess-1" {
		t.Errorf("got session %q, want sess-1", got.ID)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := store.NewRegistry()
	if _, err := r.Get("missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRegistrySingleActivePerCoach(t *testing.T) {
	r := store.NewRegistry()
	if err := r.Add(startedSession(t, "sess-1", "coach-1")); err != nil {
		t.Fatalf("first Add: %v", err)
	}

	err := r.Add(startedSession(t, "sess-2", "coach-1"))
	if !errors.Is(err, store.ErrCoachBusy) {
		t.Errorf("second active session for same coach: got %v, want ErrCoachBusy", err)
	}

	// A different coach is unaffected.
	if err := r.Add(startedSession(t, "sess-3", "coach-2")); err != nil {
		t.Errorf("other coach: %v", err)
	}
}

func TestRegistrySlotFreedAfterEnd(t *testing.T) {
	r := store.NewRegistry()
	s := startedSession(t, "sess-1", "coach-1")
	if err := r.Add(s); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.End(fixedNow.Add(30 * time.Minute)); err != nil {
		t.Fatalf("End: %v", err)
	}

	// Ended sessions no longer occupy the slot.
	if err := r.Add(startedSession(t, "sess-2", "coach-1")); err != nil {
		t.Errorf("Add after end: %v", err)
	}
}

func TestRegistryActiveForCoach(t *testing.T) {
	r := store.NewRegistry()
	if _, ok := r.ActiveForCoach("coach-1"); ok {
		t.Error("empty registry reported an active session")
	}

	s := startedSession(t, "sess-1", "coach-1")
	if err := r.Add(s); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, ok := r.ActiveForCoach("coach-1")
	if !ok || got.ID != "sess-1" {
		t.Errorf("got (%v, %v), want sess-1", got, ok)
	}

	if err := s.End(fixedNow.Add(time.Hour)); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, ok := r.ActiveForCoach("coach-1"); ok {
		t.Error("ended session still reported active")
	}
}

func TestRegistryRelease(t *testing.T) {
	r := store.NewRegistry()
	if err := r.Add(startedSession(t, "sess-1", "coach-1")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	r.Release("sess-1")
	if _, err := r.Get("sess-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("released session still present: %v", err)
	}
	if err := r.Add(startedSession(t, "sess-2", "coach-1")); err != nil {
		t.Errorf("slot not freed by Release: %v", err)
	}

	// Releasing an unknown ID is a no-op.
	r.Release("missing")
}

func TestRegistryForceRelease(t *testing.T) {
	r := store.NewRegistry()
	if err := r.Add(startedSession(t, "sess-1", "coach-1")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	r.ForceRelease("coach-1")
	if _, err := r.Get("sess-1"); !errors.Is(err, store.ErrNotFound) {
		t.Error("ForceRelease left the session in the registry")
	}
	if err := r.Add(startedSession(t, "sess-2", "coach-1")); err != nil {
		t.Errorf("slot not freed by ForceRelease: %v", err)
	}
}
