package projections

import (
	"context"
	"sort"

	"coachdesk/internal/domain/notification"
	"coachdesk/internal/domain/person"
)

// FeedNotificationStore defines the notification store interface needed by
// the feed projection.
type FeedNotificationStore interface {
	List(ctx context.Context) ([]notification.Notification, error)
}

// FeedPersonStore defines the person store interface needed by the feed
// projection for display-name search.
type FeedPersonStore interface {
	GetByID(ctx context.Context, id string) (person.Person, error)
}

// GetNotificationFeedQuery carries the feed filters. All filters are
// optional; a zero query returns everything.
type GetNotificationFeedQuery struct {
	Category   string
	SearchText string
	UnreadOnly bool
}

// GetNotificationFeedDeps holds dependencies for the feed projection.
type GetNotificationFeedDeps struct {
	NotificationStore FeedNotificationStore
	PersonStore       FeedPersonStore // optional: nil skips name resolution
}

// FeedItem is one feed entry with its related person's name resolved.
type FeedItem struct {
	notification.Notification
	RelatedPersonName string
}

// QueryGetNotificationFeed returns the filtered feed, most recent first.
// The view is recomputed fresh on every call; nothing is cached. Search
// matches case-insensitively against title, message body, and the related
// person's display name when present.
// POST: result sorted by CreatedAt descending
func QueryGetNotificationFeed(ctx context.Context, query GetNotificationFeedQuery, deps GetNotificationFeedDeps) ([]FeedItem, error) {
	notifications, err := deps.NotificationStore.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	var items []FeedItem
	for _, n := range notifications {
		if query.Category != "" && n.Category != query.Category {
			continue
		}
		if query.UnreadOnly && n.IsRead {
			continue
		}

		name := ""
		if n.RelatedPersonID != "" && deps.PersonStore != nil {
			cached, ok := names[n.RelatedPersonID]
			if !ok {
				if p, err := deps.PersonStore.GetByID(ctx, n.RelatedPersonID); err == nil {
					cached = p.Name
				}
				names[n.RelatedPersonID] = cached
			}
			name = cached
		}

		if !n.MatchesSearch(query.SearchText, name) {
			continue
		}

		items = append(items, FeedItem{Notification: n, RelatedPersonName: name})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items, nil
}
