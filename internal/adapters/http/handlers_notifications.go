package web

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"coachdesk/internal/application/listutil"
	"coachdesk/internal/application/orchestrators"
	"coachdesk/internal/application/projections"
	"coachdesk/internal/domain/notification"
)

// Query parameters accepted by GET /api/notifications.
var (
	feedSortColumns = []string{"created_at", "priority"}
	feedFilterKeys  = []string{"category", "unread"}
)

// feedItemView is one feed entry with the message rendered for display.
type feedItemView struct {
	projections.FeedItem
	MessageHTML string `json:"MessageHTML"`
}

// handleNotifications handles GET (filtered feed) and POST (create, admin)
// for /api/notifications.
func handleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}

		lp := listutil.ParseListParams(r.URL.Query(), feedSortColumns, feedFilterKeys)
		query := projections.GetNotificationFeedQuery{
			Category:   lp.Filters["category"],
			SearchText: lp.Search,
			UnreadOnly: lp.Filters["unread"] == "true",
		}
		items, err := projections.QueryGetNotificationFeed(ctx, query,
			projections.GetNotificationFeedDeps{
				NotificationStore: stores.NotificationStore,
				PersonStore:       stores.PersonStore,
			})
		if err != nil {
			internalError(w, err)
			return
		}
		sortFeed(items, lp.SortParams)

		// The feed can grow without bound; page it server-side.
		info := listutil.NewPageInfo(lp.Page, lp.PerPage, len(items))
		page := items[info.Offset():info.EndRow()]

		views := make([]feedItemView, 0, len(page))
		for _, it := range page {
			views = append(views, feedItemView{
				FeedItem:    it,
				MessageHTML: renderMarkdown(it.Message),
			})
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(info.Total))
		w.Header().Set("X-Total-Pages", strconv.Itoa(info.TotalPages))
		writeJSON(w, http.StatusOK, views)
		return
	}

	if r.Method == "POST" {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input struct {
			Category        string `json:"Category"`
			Title           string `json:"Title"`
			Message         string `json:"Message"`
			Priority        string `json:"Priority"`
			RelatedPersonID string `json:"RelatedPersonID"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		n, err := orchestrators.ExecuteCreateNotification(ctx, orchestrators.CreateNotificationInput{
			Category:        input.Category,
			Title:           input.Title,
			Message:         input.Message,
			Priority:        input.Priority,
			RelatedPersonID: input.RelatedPersonID,
		}, orchestrators.CreateNotificationDeps{
			NotificationStore: stores.NotificationStore,
			EmailSender:       emailSender,
			EmailLookup:       personEmailLookup{},
			FromAddress:       emailFromAddress,
			GenerateID:        generateID,
			Now:               timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, n)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleNotificationRead handles POST /api/notifications/read
func handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	var input struct {
		NotificationID string `json:"NotificationID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteMarkNotificationRead(r.Context(),
		orchestrators.MarkNotificationReadInput{NotificationID: input.NotificationID},
		orchestrators.MarkNotificationReadDeps{NotificationStore: stores.NotificationStore})
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNotificationReadAll handles POST /api/notifications/read-all
func handleNotificationReadAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	if err := orchestrators.ExecuteMarkAllNotificationsRead(r.Context(),
		orchestrators.MarkAllNotificationsReadDeps{NotificationStore: stores.NotificationStore}); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNotificationByID handles DELETE /api/notifications/{id}
func handleNotificationByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/notifications/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	if err := orchestrators.ExecuteDeleteNotification(r.Context(),
		orchestrators.DeleteNotificationInput{NotificationID: id},
		orchestrators.DeleteNotificationDeps{NotificationStore: stores.NotificationStore}); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sortFeed reorders items in place per the requested sort. Without a sort
// column the projection's order (newest first) is kept.
func sortFeed(items []projections.FeedItem, sp listutil.SortParams) {
	if sp.Sort == "" {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		switch sp.Sort {
		case "priority":
			less = priorityRank(items[i].Priority) < priorityRank(items[j].Priority)
		default: // created_at
			less = items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		if sp.Dir == "desc" {
			return !less && !feedEqual(items[i], items[j], sp.Sort)
		}
		return less
	})
}

func feedEqual(a, b projections.FeedItem, col string) bool {
	if col == "priority" {
		return priorityRank(a.Priority) == priorityRank(b.Priority)
	}
	return a.CreatedAt.Equal(b.CreatedAt)
}

func priorityRank(p string) int {
	switch p {
	case notification.PriorityLow:
		return 0
	case notification.PriorityMedium:
		return 1
	case notification.PriorityHigh:
		return 2
	}
	return -1
}

// personEmailLookup resolves a person's delivery address from the directory.
type personEmailLookup struct{}

func (personEmailLookup) GetEmailByPersonID(ctx context.Context, personID string) (string, string, error) {
	p, err := stores.PersonStore.GetByID(ctx, personID)
	if err != nil {
		return "", "", err
	}
	return p.Name, p.Email, nil
}
