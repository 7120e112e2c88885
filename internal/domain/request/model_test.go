package request

import (
	"errors"
	"testing"
	"time"

	"coachdesk/internal/domain/event"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func pendingRequest() LessonRequest {
	return LessonRequest{
		ID:              "r1",
		StudentID:       "stu-1",
		CoachID:         "coach-1",
		Category:        event.CategoryLesson,
		PreferredStart:  now.Add(48 * time.Hour),
		DurationMinutes: 60,
		Status:          StatusPending,
		CreatedAt:       now,
	}
}

// TestLessonRequest_Validate tests validation rules.
func TestLessonRequest_Validate(t *testing.T) {
	r := pendingRequest()
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	tests := []struct {
		name    string
		modify  func(r *LessonRequest)
		wantErr error
	}{
		{"empty student", func(r *LessonRequest) { r.StudentID = "" }, ErrEmptyStudent},
		{"empty coach", func(r *LessonRequest) { r.CoachID = "" }, ErrEmptyCoach},
		{"missing start", func(r *LessonRequest) { r.PreferredStart = time.Time{} }, ErrMissingStart},
		{"zero duration", func(r *LessonRequest) { r.DurationMinutes = 0 }, ErrInvalidDuration},
		{"bad category", func(r *LessonRequest) { r.Category = "nap" }, ErrInvalidCategory},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := pendingRequest()
			tc.modify(&r)
			if err := r.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestLessonRequest_Decide tests the approve/decline transitions.
func TestLessonRequest_Decide(t *testing.T) {
	r := pendingRequest()
	if err := r.Approve("coach-acct", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != StatusApproved || r.DecidedBy != "coach-acct" || !r.DecidedAt.Equal(now) {
		t.Errorf("approve did not record decision: %+v", r)
	}
	if err := r.Decline("coach-acct", now); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("expected ErrAlreadyDecided, got %v", err)
	}

	r2 := pendingRequest()
	if err := r2.Decline("coach-acct", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r2.Status != StatusDeclined {
		t.Errorf("expected declined, got %s", r2.Status)
	}
	if err := r2.Approve("coach-acct", now); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("expected ErrAlreadyDecided, got %v", err)
	}
}
