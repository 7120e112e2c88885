package session

import (
	"errors"
	"time"
)

// Session states.
const (
	StateIdle   = "idle"
	StateActive = "active"
	StateEnded  = "ended"
)

// Message senders.
const (
	SenderCoach   = "coach"
	SenderStudent = "student"
	SenderSystem  = "system"
)

// Message kinds.
const (
	KindText   = "text"
	KindLink   = "link"
	KindSystem = "system"
)

// Max length constants.
const (
	MaxMessageLength = 4000
)

// ValidSenders contains all valid sender values.
var ValidSenders = []string{SenderCoach, SenderStudent, SenderSystem}

// ValidKinds contains all valid message kinds.
var ValidKinds = []string{KindText, KindLink, KindSystem}

// Domain errors
var (
	ErrNotIdle          = errors.New("session has already been started")
	ErrNotActive        = errors.New("session is not active")
	ErrAlreadyEnded     = errors.New("session has already ended")
	ErrEmptyParticipant = errors.New("participant ID is required")
	ErrEmptyBody        = errors.New("message body cannot be empty")
	ErrBodyTooLong      = errors.New("message body cannot exceed 4000 characters")
	ErrInvalidSender    = errors.New("sender must be one of: coach, student, system")
	ErrInvalidKind      = errors.New("message kind must be one of: text, link, system")
)

// ChatMessage is one entry of a session's chat log.
// Messages are immutable once appended; there is no edit or delete.
type ChatMessage struct {
	ID        string
	SessionID string
	Sender    string // coach, student, system
	Body      string
	Kind      string // text, link, system
	SentAt    time.Time
}

// Session is a live one-on-one meeting between a coach and a student, with
// an attached append-only chat log. A Session instance moves idle -> active
// -> ended and never back; a new meeting requires a new instance.
type Session struct {
	ID            string
	CoachID       string
	ParticipantID string
	State         string // idle, active, ended
	MeetingLink   string
	StartedAt     time.Time
	EndedAt       time.Time

	log []ChatMessage
}

// New creates a session in the idle state for the given coach and participant.
// PRE: id, coachID, participantID are non-empty
// POST: session is idle with an empty chat log
func New(id, coachID, participantID string) (*Session, error) {
	if participantID == "" || coachID == "" {
		return nil, ErrEmptyParticipant
	}
	return &Session{
		ID:            id,
		CoachID:       coachID,
		ParticipantID: participantID,
		State:         StateIdle,
	}, nil
}

// Start activates the session and announces it in the chat log.
// The meeting link is optional; it can be attached later via AttachLink.
// PRE: session is idle
// POST: state is active, StartedAt set, one system message appended
func (s *Session) Start(meetingLink string, messageID string, now time.Time) error {
	if s.State == StateEnded {
		return ErrAlreadyEnded
	}
	if s.State != StateIdle {
		return ErrNotIdle
	}
	s.State = StateActive
	s.StartedAt = now
	s.MeetingLink = meetingLink
	s.appendSystem(messageID, "Session started", now)
	return nil
}

// AttachLink records a meeting link obtained after the session started and
// announces it in the chat log. The link is treated as an opaque URL; it is
// never validated or dereferenced here.
// PRE: session is active
// POST: MeetingLink set, one system message of kind link appended
func (s *Session) AttachLink(link string, messageID string, now time.Time) error {
	if s.State != StateActive {
		return ErrNotActive
	}
	s.MeetingLink = link
	s.log = append(s.log, ChatMessage{
		ID:        messageID,
		SessionID: s.ID,
		Sender:    SenderSystem,
		Body:      link,
		Kind:      KindLink,
		SentAt:    now,
	})
	return nil
}

// SendMessage appends a chat message with a server-assigned timestamp.
// PRE: session is active; sender and kind are valid; body is non-empty
// POST: message appended to the log
func (s *Session) SendMessage(sender, body, kind string, messageID string, now time.Time) error {
	if s.State != StateActive {
		return ErrNotActive
	}
	if !isValidSender(sender) {
		return ErrInvalidSender
	}
	if !isValidKind(kind) {
		return ErrInvalidKind
	}
	if body == "" {
		return ErrEmptyBody
	}
	if len(body) > MaxMessageLength {
		return ErrBodyTooLong
	}
	s.log = append(s.log, ChatMessage{
		ID:        messageID,
		SessionID: s.ID,
		Sender:    sender,
		Body:      body,
		Kind:      kind,
		SentAt:    now,
	})
	return nil
}

// End terminates the session. The chat log remains readable until the
// session instance itself is discarded by the caller.
// PRE: session is active
// POST: state is ended, EndedAt set
func (s *Session) End(now time.Time) error {
	if s.State == StateEnded {
		return ErrAlreadyEnded
	}
	if s.State != StateActive {
		return ErrNotActive
	}
	s.State = StateEnded
	s.EndedAt = now
	return nil
}

// IsActive returns true while the session is live.
// INVARIANT: Session fields are not mutated
func (s *Session) IsActive() bool {
	return s.State == StateActive
}

// Log returns the chat messages in append order. The returned slice is a
// copy, so callers may re-read the log at any time without side effects.
// INVARIANT: Session fields are not mutated
func (s *Session) Log() []ChatMessage {
	out := make([]ChatMessage, len(s.log))
	copy(out, s.log)
	return out
}

func (s *Session) appendSystem(messageID, body string, now time.Time) {
	s.log = append(s.log, ChatMessage{
		ID:        messageID,
		SessionID: s.ID,
		Sender:    SenderSystem,
		Body:      body,
		Kind:      KindSystem,
		SentAt:    now,
	})
}

func isValidSender(sender string) bool {
	for _, v := range ValidSenders {
		if v == sender {
			return true
		}
	}
	return false
}

func isValidKind(kind string) bool {
	for _, v := range ValidKinds {
		if v == kind {
			return true
		}
	}
	return false
}
