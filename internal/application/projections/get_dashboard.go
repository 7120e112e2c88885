package projections

import (
	"context"
	"time"

	"coachdesk/internal/domain/event"
	"coachdesk/internal/domain/request"
)

// DashboardEventStore defines the event store interface needed by the
// dashboard projection.
type DashboardEventStore interface {
	ListOnDay(ctx context.Context, day time.Time) ([]event.Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]event.Event, error)
}

// DashboardRequestStore defines the request store interface needed by the
// dashboard projection.
type DashboardRequestStore interface {
	ListPendingForCoach(ctx context.Context, coachID string) ([]request.LessonRequest, error)
	ListForStudent(ctx context.Context, studentID string) ([]request.LessonRequest, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Role     string // admin, coach, student
	PersonID string // directory entry of the signed-in coach or student
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	EventStore        DashboardEventStore
	NotificationStore FeedNotificationStore
	RequestStore      DashboardRequestStore
}

// upcomingLimit caps the dashboard's upcoming-events strip.
const upcomingLimit = 5

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Role string

	// Shared
	TodaysEvents   []event.Event
	UpcomingEvents []event.Event
	UnreadCount    int

	// Coach
	PendingRequests []request.LessonRequest

	// Student
	MyRequests []request.LessonRequest
}

// QueryGetDashboard aggregates dashboard data based on the user's role.
// Individual lookups are best-effort: a failing section leaves its zero
// value rather than blanking the whole dashboard.
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	result := DashboardResult{Role: query.Role}

	// All roles: today's schedule and the next few events
	todays, err := deps.EventStore.ListOnDay(ctx, now)
	if err == nil {
		result.TodaysEvents = todays
	}
	upcoming, err := deps.EventStore.ListUpcoming(ctx, now, upcomingLimit)
	if err == nil {
		result.UpcomingEvents = upcoming
	}

	// All roles: unread feed count
	notifications, err := deps.NotificationStore.List(ctx)
	if err == nil {
		for _, n := range notifications {
			if !n.IsRead {
				result.UnreadCount++
			}
		}
	}

	switch query.Role {
	case "coach":
		if query.PersonID != "" {
			pending, err := deps.RequestStore.ListPendingForCoach(ctx, query.PersonID)
			if err == nil {
				result.PendingRequests = pending
			}
		}

	case "student":
		if query.PersonID != "" {
			mine, err := deps.RequestStore.ListForStudent(ctx, query.PersonID)
			if err == nil {
				result.MyRequests = mine
			}
		}
	}

	return result, nil
}
