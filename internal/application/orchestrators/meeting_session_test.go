package orchestrators

import (
	"context"
	"errors"
	"testing"

	"coachdesk/internal/adapters/storage/kv"
	sessionStore "coachdesk/internal/adapters/storage/session"
	"coachdesk/internal/domain/session"
)

func sessionDeps() (StartSessionDeps, *sessionStore.Registry, *kv.MemoryStore) {
	registry := sessionStore.NewRegistry()
	threads := kv.NewMemoryStore()
	return StartSessionDeps{
		Registry:   registry,
		GenerateID: seqID(),
		Now:        fixedNow,
	}, registry, threads
}

func TestExecuteStartSession(t *testing.T) {
	deps, _, _ := sessionDeps()
	s, err := ExecuteStartSession(context.Background(), StartSessionInput{
		CoachID:       "coach-001",
		ParticipantID: "student-001",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsActive() {
		t.Errorf("expected active session, got state %s", s.State)
	}
	log := s.Log()
	if len(log) != 1 || log[0].Kind != session.KindSystem {
		t.Fatalf("expected one system message announcing the start, got %+v", log)
	}
}

func TestExecuteStartSession_SecondActiveFails(t *testing.T) {
	deps, _, _ := sessionDeps()
	first, err := ExecuteStartSession(context.Background(), StartSessionInput{
		CoachID:       "coach-001",
		ParticipantID: "student-001",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ExecuteStartSession(context.Background(), StartSessionInput{
		CoachID:       "coach-001",
		ParticipantID: "student-002",
	}, deps)
	if !errors.Is(err, sessionStore.ErrCoachBusy) {
		t.Errorf("expected ErrCoachBusy, got %v", err)
	}
	// The existing session's log is unchanged.
	if len(first.Log()) != 1 {
		t.Errorf("expected existing log untouched, got %d messages", len(first.Log()))
	}
}

func TestExecuteSendSessionMessage(t *testing.T) {
	deps, registry, _ := sessionDeps()
	s, err := ExecuteStartSession(context.Background(), StartSessionInput{
		CoachID:       "coach-001",
		ParticipantID: "student-001",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg, err := ExecuteSendSessionMessage(context.Background(), SendSessionMessageInput{
		SessionID: s.ID,
		Sender:    session.SenderCoach,
		Body:      "Hi",
		Kind:      session.KindText,
	}, SendSessionMessageDeps{Registry: registry, GenerateID: seqID(), Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Kind != session.KindText || msg.Body != "Hi" {
		t.Errorf("unexpected message %+v", msg)
	}
	if len(s.Log()) != 2 {
		t.Errorf("expected log length 2, got %d", len(s.Log()))
	}
}

func TestExecuteSendSessionMessage_UnknownSession(t *testing.T) {
	_, registry, _ := sessionDeps()
	_, err := ExecuteSendSessionMessage(context.Background(), SendSessionMessageInput{
		SessionID: "missing",
		Sender:    session.SenderCoach,
		Body:      "Hi",
		Kind:      session.KindText,
	}, SendSessionMessageDeps{Registry: registry, GenerateID: fixedID, Now: fixedNow})
	if !errors.Is(err, sessionStore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExecuteAttachSessionLink(t *testing.T) {
	deps, registry, _ := sessionDeps()
	s, err := ExecuteStartSession(context.Background(), StartSessionInput{
		CoachID:       "coach-001",
		ParticipantID: "student-001",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err = ExecuteAttachSessionLink(context.Background(), AttachSessionLinkInput{
		SessionID: s.ID,
		Link:      "https://meet.example/room-7",
	}, AttachSessionLinkDeps{Registry: registry, GenerateID: seqID(), Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.MeetingLink != "https://meet.example/room-7" {
		t.Errorf("expected link recorded, got %q", s.MeetingLink)
	}
	log := s.Log()
	if log[len(log)-1].Kind != session.KindLink {
		t.Errorf("expected trailing link message, got %+v", log[len(log)-1])
	}
}

func TestExecuteEndSession_ArchivesAndReleases(t *testing.T) {
	deps, registry, threads := sessionDeps()
	s, err := ExecuteStartSession(context.Background(), StartSessionInput{
		CoachID:       "coach-001",
		ParticipantID: "student-001",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ExecuteSendSessionMessage(context.Background(), SendSessionMessageInput{
		SessionID: s.ID, Sender: session.SenderCoach, Body: "Hi", Kind: session.KindText,
	}, SendSessionMessageDeps{Registry: registry, GenerateID: seqID(), Now: fixedNow}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ended, err := ExecuteEndSession(context.Background(), EndSessionInput{SessionID: s.ID},
		EndSessionDeps{Registry: registry, Threads: threads, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ended.State != session.StateEnded {
		t.Errorf("expected ended state, got %s", ended.State)
	}

	// Transcript archived to the per-student thread collection.
	archived, err := kv.ThreadsForStudent(context.Background(), threads, "student-001")
	if err != nil {
		t.Fatalf("ThreadsForStudent: %v", err)
	}
	if len(archived) != 1 || len(archived[0].Messages) != 2 {
		t.Fatalf("expected one thread with 2 messages, got %+v", archived)
	}

	// Instance discarded from the registry.
	if _, err := registry.Get(s.ID); !errors.Is(err, sessionStore.ErrNotFound) {
		t.Errorf("expected session released, got %v", err)
	}

	// A new session for the same coach can now start.
	if _, err := ExecuteStartSession(context.Background(), StartSessionInput{
		CoachID:       "coach-001",
		ParticipantID: "student-002",
	}, deps); err != nil {
		t.Errorf("expected slot freed after end, got %v", err)
	}
}
