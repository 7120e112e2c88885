package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	eventStore "coachdesk/internal/adapters/storage/event"
	"coachdesk/internal/application/orchestrators"
	"coachdesk/internal/application/projections"
)

// handleCalendarGrid handles GET /api/calendar?year=2026&month=3
// Omitted parameters default to the current month.
func handleCalendarGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	now := timeNow()
	year := now.Year()
	month := now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		month = time.Month(n)
	}

	cells, err := projections.QueryGetMonthGrid(r.Context(), projections.GetMonthGridQuery{
		Year:  year,
		Month: month,
	}, projections.GetMonthGridDeps{EventStore: stores.EventStore})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cells)
}

// handleEvents handles GET (list for a day or upcoming) and POST (schedule)
// for /api/events.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}

		if day := r.URL.Query().Get("day"); day != "" {
			date, err := time.ParseInLocation("2006-01-02", day, time.Local)
			if err != nil {
				http.Error(w, "invalid day, want YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			results, err := stores.EventStore.ListOnDay(ctx, date)
			if err != nil {
				internalError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, results)
			return
		}

		// Default: upcoming events from now
		from := timeNow()
		if v := r.URL.Query().Get("from"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "invalid from, want RFC3339", http.StatusBadRequest)
				return
			}
			from = t
		}
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		results, err := stores.EventStore.ListUpcoming(ctx, from, limit)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, results)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireCoachOrAdmin(w, r)
		if !ok {
			return
		}
		var input struct {
			Title           string `json:"Title"`
			Start           string `json:"Start"`
			DurationMinutes int    `json:"DurationMinutes"`
			Category        string `json:"Category"`
			Status          string `json:"Status"`
			RelatedPersonID string `json:"RelatedPersonID"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		start, err := time.Parse(time.RFC3339, input.Start)
		if err != nil {
			http.Error(w, "invalid Start, want RFC3339", http.StatusBadRequest)
			return
		}

		e, err := orchestrators.ExecuteScheduleEvent(ctx, orchestrators.ScheduleEventInput{
			Title:           input.Title,
			Start:           start,
			DurationMinutes: input.DurationMinutes,
			Category:        input.Category,
			Status:          input.Status,
			RelatedPersonID: input.RelatedPersonID,
			CreatedBy:       sess.AccountID,
		}, orchestrators.ScheduleEventDeps{
			EventStore: stores.EventStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, e)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleEventByID handles GET/PUT/DELETE for /api/events/{id}
func handleEventByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimPrefix(r.URL.Path, "/api/events/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "GET":
		if _, ok := requireSession(w, r); !ok {
			return
		}
		e, err := stores.EventStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, e)

	case "PUT":
		if _, ok := requireCoachOrAdmin(w, r); !ok {
			return
		}
		var input struct {
			Title              string `json:"Title"`
			Start              string `json:"Start"`
			DurationMinutes    int    `json:"DurationMinutes"`
			Category           string `json:"Category"`
			Status             string `json:"Status"`
			RelatedPersonID    string `json:"RelatedPersonID"`
			ClearRelatedPerson bool   `json:"ClearRelatedPerson"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		orchInput := orchestrators.EditEventInput{
			EventID:            id,
			Title:              input.Title,
			DurationMinutes:    input.DurationMinutes,
			Category:           input.Category,
			Status:             input.Status,
			RelatedPersonID:    input.RelatedPersonID,
			ClearRelatedPerson: input.ClearRelatedPerson,
		}
		if input.Start != "" {
			t, err := time.Parse(time.RFC3339, input.Start)
			if err != nil {
				http.Error(w, "invalid Start, want RFC3339", http.StatusBadRequest)
				return
			}
			orchInput.Start = t
		}
		e, err := orchestrators.ExecuteEditEvent(ctx, orchInput,
			orchestrators.EditEventDeps{EventStore: stores.EventStore})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, eventStore.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, http.StatusOK, e)

	case "DELETE":
		if _, ok := requireCoachOrAdmin(w, r); !ok {
			return
		}
		if err := orchestrators.ExecuteRemoveEvent(ctx, orchestrators.RemoveEventInput{EventID: id},
			orchestrators.RemoveEventDeps{EventStore: stores.EventStore}); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEventCancel handles POST /api/events/cancel
func handleEventCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireCoachOrAdmin(w, r); !ok {
		return
	}

	var input struct {
		EventID string `json:"EventID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	e, err := orchestrators.ExecuteCancelEvent(r.Context(),
		orchestrators.CancelEventInput{EventID: input.EventID},
		orchestrators.CancelEventDeps{EventStore: stores.EventStore})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, eventStore.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
