package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coachdesk/internal/adapters/storage/kv"
	"coachdesk/internal/domain/session"
)

// SessionRegistryForOrchestrator defines the registry interface needed by
// session orchestrators.
type SessionRegistryForOrchestrator interface {
	Add(s *session.Session) error
	Get(id string) (*session.Session, error)
	Release(id string)
}

// --- Start Session ---

// StartSessionInput carries input for the start session orchestrator.
type StartSessionInput struct {
	CoachID       string
	ParticipantID string
	MeetingLink   string // optional; can be attached later
}

// StartSessionDeps holds dependencies for StartSession.
type StartSessionDeps struct {
	Registry   SessionRegistryForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteStartSession creates and activates a meeting session.
// PRE: CoachID and ParticipantID are non-empty; coach holds no active session
// POST: Session is active with one system message in its log
func ExecuteStartSession(ctx context.Context, input StartSessionInput, deps StartSessionDeps) (*session.Session, error) {
	s, err := session.New(deps.GenerateID(), input.CoachID, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	if err := s.Start(input.MeetingLink, deps.GenerateID(), deps.Now()); err != nil {
		return nil, err
	}

	// The registry rejects a second active session for the same coach; the
	// freshly started instance is simply discarded in that case.
	if err := deps.Registry.Add(s); err != nil {
		return nil, err
	}

	slog.Info("session_event", "event", "session_started", "session_id", s.ID, "coach_id", input.CoachID, "participant_id", input.ParticipantID)
	return s, nil
}

// --- Attach Link ---

// AttachSessionLinkInput carries input for the attach link orchestrator.
type AttachSessionLinkInput struct {
	SessionID string
	Link      string
}

// AttachSessionLinkDeps holds dependencies for AttachSessionLink.
type AttachSessionLinkDeps struct {
	Registry   SessionRegistryForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteAttachSessionLink records a meeting link obtained after start.
// PRE: session exists and is active; Link is non-empty
// POST: MeetingLink set, one link-kind system message appended
func ExecuteAttachSessionLink(ctx context.Context, input AttachSessionLinkInput, deps AttachSessionLinkDeps) (*session.Session, error) {
	if input.Link == "" {
		return nil, errors.New("meeting link is required")
	}

	s, err := deps.Registry.Get(input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.AttachLink(input.Link, deps.GenerateID(), deps.Now()); err != nil {
		return nil, err
	}

	slog.Info("session_event", "event", "session_link_attached", "session_id", s.ID)
	return s, nil
}

// --- Send Message ---

// SendSessionMessageInput carries input for the send message orchestrator.
type SendSessionMessageInput struct {
	SessionID string
	Sender    string
	Body      string
	Kind      string
}

// SendSessionMessageDeps holds dependencies for SendSessionMessage.
type SendSessionMessageDeps struct {
	Registry   SessionRegistryForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSendSessionMessage appends a chat message to an active session.
// The timestamp is server-assigned; clients never supply one.
// PRE: session exists and is active; sender, body, kind are valid
// POST: message appended to the session's log
func ExecuteSendSessionMessage(ctx context.Context, input SendSessionMessageInput, deps SendSessionMessageDeps) (session.ChatMessage, error) {
	s, err := deps.Registry.Get(input.SessionID)
	if err != nil {
		return session.ChatMessage{}, err
	}

	if err := s.SendMessage(input.Sender, input.Body, input.Kind, deps.GenerateID(), deps.Now()); err != nil {
		return session.ChatMessage{}, err
	}

	log := s.Log()
	msg := log[len(log)-1]

	slog.Info("session_event", "event", "session_message_sent", "session_id", s.ID, "sender", input.Sender, "kind", input.Kind)
	return msg, nil
}

// --- End Session ---

// EndSessionInput carries input for the end session orchestrator.
type EndSessionInput struct {
	SessionID string
}

// EndSessionDeps holds dependencies for EndSession.
type EndSessionDeps struct {
	Registry SessionRegistryForOrchestrator
	Threads  kv.Repository
	Now      func() time.Time
}

// ExecuteEndSession terminates a session, archives its transcript to the
// per-student thread collection, and discards the instance. Archive failure
// is logged but never blocks the end: the session is over either way.
// PRE: session exists and is active
// POST: session ended and released; transcript appended to the thread collection
func ExecuteEndSession(ctx context.Context, input EndSessionInput, deps EndSessionDeps) (*session.Session, error) {
	s, err := deps.Registry.Get(input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.End(deps.Now()); err != nil {
		return nil, err
	}

	if err := kv.AppendThread(ctx, deps.Threads, kv.ThreadFromSession(s)); err != nil {
		slog.Error("session_event", "event", "transcript_archive_failed", "session_id", s.ID, "error", err)
	}

	deps.Registry.Release(s.ID)

	slog.Info("session_event", "event", "session_ended", "session_id", s.ID, "message_count", len(s.Log()))
	return s, nil
}
