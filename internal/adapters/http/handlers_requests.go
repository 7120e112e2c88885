package web

import (
	"net/http"
	"time"

	"coachdesk/internal/adapters/storage/kv"
	"coachdesk/internal/application/orchestrators"
	"coachdesk/internal/domain/lecture"
)

// handleRequests handles GET (role-scoped listing) and POST (submit) for
// /api/requests.
func handleRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		if sess.PersonID == "" {
			writeJSON(w, http.StatusOK, nil)
			return
		}

		if sess.Role == "coach" {
			results, err := stores.RequestStore.ListPendingForCoach(ctx, sess.PersonID)
			if err != nil {
				internalError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, results)
			return
		}

		results, err := stores.RequestStore.ListForStudent(ctx, sess.PersonID)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, results)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		if sess.Role != "student" || sess.PersonID == "" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		var input struct {
			CoachID         string `json:"CoachID"`
			Category        string `json:"Category"`
			PreferredStart  string `json:"PreferredStart"`
			DurationMinutes int    `json:"DurationMinutes"`
			Note            string `json:"Note"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		start, err := time.Parse(time.RFC3339, input.PreferredStart)
		if err != nil {
			http.Error(w, "invalid PreferredStart, want RFC3339", http.StatusBadRequest)
			return
		}

		req, err := orchestrators.ExecuteSubmitRequest(ctx, orchestrators.SubmitRequestInput{
			StudentID:       sess.PersonID,
			CoachID:         input.CoachID,
			Category:        input.Category,
			PreferredStart:  start,
			DurationMinutes: input.DurationMinutes,
			Note:            input.Note,
		}, orchestrators.SubmitRequestDeps{
			RequestStore:      stores.RequestStore,
			NotificationStore: stores.NotificationStore,
			GenerateID:        generateID,
			Now:               timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, req)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleRequestApprove handles POST /api/requests/approve
func handleRequestApprove(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireCoachOrAdmin(w, r)
	if !ok {
		return
	}

	var input struct {
		RequestID string `json:"RequestID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	e, err := orchestrators.ExecuteApproveRequest(r.Context(), orchestrators.ApproveRequestInput{
		RequestID: input.RequestID,
		DeciderID: sess.AccountID,
	}, orchestrators.ApproveRequestDeps{
		RequestStore: stores.RequestStore,
		EventStore:   stores.EventStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// handleRequestDecline handles POST /api/requests/decline
func handleRequestDecline(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireCoachOrAdmin(w, r)
	if !ok {
		return
	}

	var input struct {
		RequestID string `json:"RequestID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	req, err := orchestrators.ExecuteDeclineRequest(r.Context(), orchestrators.DeclineRequestInput{
		RequestID: input.RequestID,
		DeciderID: sess.AccountID,
	}, orchestrators.DeclineRequestDeps{
		RequestStore: stores.RequestStore,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// lectureView is a catalog entry with the description rendered for display.
type lectureView struct {
	lecture.Lecture
	DescriptionHTML string `json:"DescriptionHTML,omitempty"`
}

// handleLectures handles GET (catalog) and POST (add, coach/admin) for
// /api/lectures.
func handleLectures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		lectures, err := kv.LoadLectures(ctx, stores.Collections)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]lectureView, 0, len(lectures))
		for _, l := range lectures {
			v := lectureView{Lecture: l}
			if l.Description != "" {
				v.DescriptionHTML = renderMarkdown(l.Description)
			}
			views = append(views, v)
		}
		writeJSON(w, http.StatusOK, views)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireCoachOrAdmin(w, r)
		if !ok {
			return
		}
		var input struct {
			Title           string `json:"Title"`
			Description     string `json:"Description"`
			VideoURL        string `json:"VideoURL"`
			DurationMinutes int    `json:"DurationMinutes"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		l := lecture.Lecture{
			ID:              generateID(),
			Title:           input.Title,
			Description:     input.Description,
			VideoURL:        input.VideoURL,
			DurationMinutes: input.DurationMinutes,
			AddedBy:         sess.AccountID,
			AddedAt:         timeNow(),
		}
		if err := l.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		lectures, err := kv.LoadLectures(ctx, stores.Collections)
		if err != nil {
			internalError(w, err)
			return
		}
		if err := kv.SaveLectures(ctx, stores.Collections, append(lectures, l)); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, l)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
