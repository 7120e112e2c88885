package projections

import (
	"context"
	"time"

	"coachdesk/internal/domain/calendar"
	"coachdesk/internal/domain/event"
)

// MonthGridEventStore defines the event store interface needed by the month
// grid projection.
type MonthGridEventStore interface {
	ListOnDay(ctx context.Context, day time.Time) ([]event.Event, error)
}

// GetMonthGridQuery carries input for the month grid projection.
type GetMonthGridQuery struct {
	Year  int
	Month time.Month
}

// GetMonthGridDeps holds dependencies for the month grid projection.
type GetMonthGridDeps struct {
	EventStore MonthGridEventStore
}

// MonthGridCell is one of the 42 rendered calendar cells.
type MonthGridCell struct {
	Date             time.Time
	InCurrentMonth   bool
	Events           []event.Event
	DominantCategory string // empty when the day has no events
}

// QueryGetMonthGrid builds the 6x7 calendar view for a month: every cell
// carries its day's events sorted by start time and the dominant category
// used for cell highlighting.
// POST: exactly 42 cells, in chronological order
func QueryGetMonthGrid(ctx context.Context, query GetMonthGridQuery, deps GetMonthGridDeps) ([]MonthGridCell, error) {
	days := calendar.GenerateGrid(query.Year, query.Month)
	cells := make([]MonthGridCell, 0, len(days))

	for _, d := range days {
		events, err := deps.EventStore.ListOnDay(ctx, d.Date)
		if err != nil {
			return nil, err
		}
		cell := MonthGridCell{
			Date:           d.Date,
			InCurrentMonth: d.InCurrentMonth,
			Events:         events,
		}
		if dominant, ok := event.DominantCategory(events); ok {
			cell.DominantCategory = dominant
		}
		cells = append(cells, cell)
	}

	return cells, nil
}
