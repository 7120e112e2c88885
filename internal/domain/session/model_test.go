package session

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func activeSession(t *testing.T) *Session {
	t.Helper()
	s, err := New("s1", "coach-1", "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Start("", "m0", testStart); err != nil {
		t.Fatalf("unexpected error starting session: %v", err)
	}
	return s
}

// TestNew_RequiresParticipants tests participant validation.
func TestNew_RequiresParticipants(t *testing.T) {
	if _, err := New("s1", "", "P1"); !errors.Is(err, ErrEmptyParticipant) {
		t.Errorf("expected ErrEmptyParticipant for empty coach, got %v", err)
	}
	if _, err := New("s1", "coach-1", ""); !errors.Is(err, ErrEmptyParticipant) {
		t.Errorf("expected ErrEmptyParticipant for empty participant, got %v", err)
	}
}

// TestSession_StartAppendsSystemMessage tests the start transition.
func TestSession_StartAppendsSystemMessage(t *testing.T) {
	s := activeSession(t)
	if s.State != StateActive {
		t.Fatalf("expected active state, got %s", s.State)
	}
	if !s.StartedAt.Equal(testStart) {
		t.Errorf("expected StartedAt=%v, got %v", testStart, s.StartedAt)
	}
	log := s.Log()
	if len(log) != 1 {
		t.Fatalf("expected 1 system message after start, got %d", len(log))
	}
	if log[0].Sender != SenderSystem || log[0].Kind != KindSystem {
		t.Errorf("expected system/system message, got %s/%s", log[0].Sender, log[0].Kind)
	}
}

// TestSession_StartTwiceFails tests that a second start is rejected and the
// log is left unchanged.
func TestSession_StartTwiceFails(t *testing.T) {
	s := activeSession(t)
	before := len(s.Log())
	if err := s.Start("", "m9", testStart.Add(time.Minute)); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("expected ErrNotIdle, got %v", err)
	}
	if got := len(s.Log()); got != before {
		t.Errorf("log changed on failed start: %d -> %d", before, got)
	}
}

// TestSession_Lifecycle tests the start -> message -> end scenario.
func TestSession_Lifecycle(t *testing.T) {
	s := activeSession(t)

	if err := s.SendMessage(SenderCoach, "Hi", KindText, "m1", testStart.Add(time.Second)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log := s.Log()
	if len(log) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(log))
	}
	if log[1].Kind != KindText || log[1].Sender != SenderCoach || log[1].Body != "Hi" {
		t.Errorf("unexpected second message: %+v", log[1])
	}

	endTime := testStart.Add(30 * time.Minute)
	if err := s.End(endTime); err != nil {
		t.Fatalf("unexpected error ending: %v", err)
	}
	if s.State != StateEnded || !s.EndedAt.Equal(endTime) {
		t.Errorf("expected ended at %v, got %s/%v", endTime, s.State, s.EndedAt)
	}

	// Log must survive End until the instance is discarded.
	if got := len(s.Log()); got != 2 {
		t.Errorf("expected log to remain readable after end, got %d messages", got)
	}

	if err := s.SendMessage(SenderCoach, "late", KindText, "m2", endTime.Add(time.Second)); !errors.Is(err, ErrNotActive) {
		t.Errorf("expected ErrNotActive after end, got %v", err)
	}
	if err := s.Start("", "m3", endTime.Add(time.Minute)); !errors.Is(err, ErrAlreadyEnded) {
		t.Errorf("expected ErrAlreadyEnded on restart, got %v", err)
	}
}

// TestSession_SendMessageValidation tests sender/kind/body validation.
func TestSession_SendMessageValidation(t *testing.T) {
	tests := []struct {
		name    string
		sender  string
		body    string
		kind    string
		wantErr error
	}{
		{"bad sender", "referee", "hi", KindText, ErrInvalidSender},
		{"bad kind", SenderCoach, "hi", "gif", ErrInvalidKind},
		{"empty body", SenderCoach, "", KindText, ErrEmptyBody},
		{"body too long", SenderCoach, strings.Repeat("a", MaxMessageLength+1), KindText, ErrBodyTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := activeSession(t)
			err := s.SendMessage(tt.sender, tt.body, tt.kind, "mx", testStart)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestSession_SendBeforeStart tests that messaging an idle session fails.
func TestSession_SendBeforeStart(t *testing.T) {
	s, _ := New("s1", "coach-1", "P1")
	if err := s.SendMessage(SenderCoach, "hi", KindText, "m1", testStart); !errors.Is(err, ErrNotActive) {
		t.Errorf("expected ErrNotActive on idle session, got %v", err)
	}
}

// TestSession_AttachLink tests late link attachment.
func TestSession_AttachLink(t *testing.T) {
	s := activeSession(t)
	if err := s.AttachLink("https://meet.example/abc", "m1", testStart.Add(time.Second)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.MeetingLink != "https://meet.example/abc" {
		t.Errorf("expected link stored, got %q", s.MeetingLink)
	}
	log := s.Log()
	last := log[len(log)-1]
	if last.Kind != KindLink || last.Sender != SenderSystem {
		t.Errorf("expected system link message, got %+v", last)
	}

	_ = s.End(testStart.Add(time.Minute))
	if err := s.AttachLink("https://meet.example/late", "m2", testStart.Add(2*time.Minute)); !errors.Is(err, ErrNotActive) {
		t.Errorf("expected ErrNotActive after end, got %v", err)
	}
}

// TestSession_LogIsCopy tests that mutating a returned log does not affect
// the session.
func TestSession_LogIsCopy(t *testing.T) {
	s := activeSession(t)
	log := s.Log()
	log[0].Body = "tampered"
	if s.Log()[0].Body == "tampered" {
		t.Error("returned log should be a copy, not a view")
	}
}
