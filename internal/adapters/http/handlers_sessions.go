package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"coachdesk/internal/adapters/storage/kv"
	sessionStore "coachdesk/internal/adapters/storage/session"
	"coachdesk/internal/application/orchestrators"
	"coachdesk/internal/domain/session"
)

// sessionView is the JSON shape of a live session.
type sessionView struct {
	ID            string                `json:"ID"`
	CoachID       string                `json:"CoachID"`
	ParticipantID string                `json:"ParticipantID"`
	State         string                `json:"State"`
	MeetingLink   string                `json:"MeetingLink,omitempty"`
	StartedAt     string                `json:"StartedAt,omitempty"`
	EndedAt       string                `json:"EndedAt,omitempty"`
	Log           []session.ChatMessage `json:"Log"`
}

func viewOfSession(s *session.Session) sessionView {
	v := sessionView{
		ID:            s.ID,
		CoachID:       s.CoachID,
		ParticipantID: s.ParticipantID,
		State:         s.State,
		MeetingLink:   s.MeetingLink,
		Log:           s.Log(),
	}
	if !s.StartedAt.IsZero() {
		v.StartedAt = s.StartedAt.Format(time.RFC3339)
	}
	if !s.EndedAt.IsZero() {
		v.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	return v
}

// handleSessions handles POST /api/sessions (start a session)
func handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireCoachOrAdmin(w, r)
	if !ok {
		return
	}

	var input struct {
		ParticipantID string `json:"ParticipantID"`
		MeetingLink   string `json:"MeetingLink"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	coachID := sess.PersonID
	if coachID == "" {
		coachID = sess.AccountID // admins have no directory entry
	}

	s, err := orchestrators.ExecuteStartSession(r.Context(), orchestrators.StartSessionInput{
		CoachID:       coachID,
		ParticipantID: input.ParticipantID,
		MeetingLink:   input.MeetingLink,
	}, orchestrators.StartSessionDeps{
		Registry:   meetings,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, sessionStore.ErrCoachBusy) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusCreated, viewOfSession(s))
}

// handleSessionByID handles GET /api/sessions/{id} (session state + chat log)
func handleSessionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	s, err := meetings.Get(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewOfSession(s))
}

// handleSessionMessage handles POST /api/sessions/message
func handleSessionMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var input struct {
		SessionID string `json:"SessionID"`
		Body      string `json:"Body"`
		Kind      string `json:"Kind"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	kind := input.Kind
	if kind == "" {
		kind = session.KindText
	}

	// The sender role follows the signed-in account, never the payload.
	sender := session.SenderStudent
	if sess.Role != "student" {
		sender = session.SenderCoach
	}

	msg, err := orchestrators.ExecuteSendSessionMessage(r.Context(), orchestrators.SendSessionMessageInput{
		SessionID: input.SessionID,
		Sender:    sender,
		Body:      input.Body,
		Kind:      kind,
	}, orchestrators.SendSessionMessageDeps{
		Registry:   meetings,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, sessionStore.ErrNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, session.ErrNotActive) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// handleSessionLink handles POST /api/sessions/link
func handleSessionLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireCoachOrAdmin(w, r); !ok {
		return
	}

	var input struct {
		SessionID string `json:"SessionID"`
		Link      string `json:"Link"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	s, err := orchestrators.ExecuteAttachSessionLink(r.Context(), orchestrators.AttachSessionLinkInput{
		SessionID: input.SessionID,
		Link:      input.Link,
	}, orchestrators.AttachSessionLinkDeps{
		Registry:   meetings,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, viewOfSession(s))
}

// handleSessionEnd handles POST /api/sessions/end
func handleSessionEnd(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireCoachOrAdmin(w, r); !ok {
		return
	}

	var input struct {
		SessionID string `json:"SessionID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	s, err := orchestrators.ExecuteEndSession(r.Context(),
		orchestrators.EndSessionInput{SessionID: input.SessionID},
		orchestrators.EndSessionDeps{
			Registry: meetings,
			Threads:  stores.Collections,
			Now:      timeNow,
		})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, sessionStore.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, viewOfSession(s))
}

// handleSessionForceRelease handles POST /api/sessions/force-release.
// Admin escape hatch for a coach slot wedged by an abruptly closed browser.
func handleSessionForceRelease(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var input struct {
		CoachID string `json:"CoachID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.CoachID == "" {
		http.Error(w, "CoachID is required", http.StatusBadRequest)
		return
	}

	meetings.ForceRelease(input.CoachID)
	w.WriteHeader(http.StatusNoContent)
}

// handleThreads handles GET /api/threads, the archived session transcripts.
// Students see their own; coaches and admins filter by student query param.
func handleThreads(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	studentID := sess.PersonID
	if sess.Role != "student" {
		studentID = r.URL.Query().Get("student")
	}
	if studentID == "" {
		http.Error(w, "student is required", http.StatusBadRequest)
		return
	}

	threads, err := kv.ThreadsForStudent(r.Context(), stores.Collections, studentID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, threads)
}
