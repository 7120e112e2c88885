package kv

import (
	"context"
	"errors"
	"time"

	"coachdesk/internal/domain/lecture"
	"coachdesk/internal/domain/session"
)

// Collection keys.
const (
	KeyLessonThreads = "lesson_threads"
	KeyLectures      = "lectures"
)

// ThreadMessage is one archived chat message.
type ThreadMessage struct {
	ID     string    `json:"id"`
	Sender string    `json:"sender"`
	Body   string    `json:"body"`
	Kind   string    `json:"kind"`
	SentAt time.Time `json:"sent_at"`
}

// Thread is the archived transcript of one ended meeting session. Threads
// are append-only: archival adds a new entry and never rewrites old ones.
type Thread struct {
	SessionID string          `json:"session_id"`
	CoachID   string          `json:"coach_id"`
	StudentID string          `json:"student_id"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   time.Time       `json:"ended_at"`
	Messages  []ThreadMessage `json:"messages"`
}

// ThreadFromSession snapshots an ended session's chat log into a Thread.
// PRE: s has ended
func ThreadFromSession(s *session.Session) Thread {
	t := Thread{
		SessionID: s.ID,
		CoachID:   s.CoachID,
		StudentID: s.ParticipantID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
	}
	for _, m := range s.Log() {
		t.Messages = append(t.Messages, ThreadMessage{
			ID:     m.ID,
			Sender: m.Sender,
			Body:   m.Body,
			Kind:   m.Kind,
			SentAt: m.SentAt,
		})
	}
	return t
}

// LoadThreads returns all archived transcripts. An absent collection reads
// as empty; malformed stored content is an error.
func LoadThreads(ctx context.Context, r Repository) ([]Thread, error) {
	var threads []Thread
	err := LoadJSON(ctx, r, KeyLessonThreads, &threads)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return threads, err
}

// AppendThread adds a transcript to the collection.
// POST: the collection holds the new thread after all previous ones
func AppendThread(ctx context.Context, r Repository, t Thread) error {
	threads, err := LoadThreads(ctx, r)
	if err != nil {
		return err
	}
	return SaveJSON(ctx, r, KeyLessonThreads, append(threads, t))
}

// ThreadsForStudent returns the archived transcripts of one student's
// sessions, in archival order.
func ThreadsForStudent(ctx context.Context, r Repository, studentID string) ([]Thread, error) {
	threads, err := LoadThreads(ctx, r)
	if err != nil {
		return nil, err
	}
	var out []Thread
	for _, t := range threads {
		if t.StudentID == studentID {
			out = append(out, t)
		}
	}
	return out, nil
}

// LoadLectures returns the video-lecture catalog. An absent collection
// reads as empty.
func LoadLectures(ctx context.Context, r Repository) ([]lecture.Lecture, error) {
	var lectures []lecture.Lecture
	err := LoadJSON(ctx, r, KeyLectures, &lectures)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return lectures, err
}

// SaveLectures replaces the video-lecture catalog.
func SaveLectures(ctx context.Context, r Repository, lectures []lecture.Lecture) error {
	return SaveJSON(ctx, r, KeyLectures, lectures)
}
