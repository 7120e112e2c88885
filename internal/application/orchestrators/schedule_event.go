package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coachdesk/internal/domain/event"
)

// EventStoreForOrchestrator defines the store interface needed by event orchestrators.
type EventStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	Save(ctx context.Context, e event.Event) error
	Delete(ctx context.Context, id string) error
}

// --- Schedule Event ---

// ScheduleEventInput carries input for the schedule event orchestrator.
type ScheduleEventInput struct {
	Title           string
	Start           time.Time
	DurationMinutes int
	Category        string
	Status          string // defaults to scheduled when empty
	RelatedPersonID string
	CreatedBy       string // AccountID of creator
}

// ScheduleEventDeps holds dependencies for ScheduleEvent.
type ScheduleEventDeps struct {
	EventStore EventStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteScheduleEvent places a new event on the calendar.
// PRE: Title, Start, Category must be set; DurationMinutes > 0; CreatedBy non-empty
// POST: Event created with generated ID, dashboards notified via the store
func ExecuteScheduleEvent(ctx context.Context, input ScheduleEventInput, deps ScheduleEventDeps) (event.Event, error) {
	if input.CreatedBy == "" {
		return event.Event{}, errors.New("creator account ID is required")
	}

	status := input.Status
	if status == "" {
		status = event.StatusScheduled
	}

	e := event.Event{
		ID:              deps.GenerateID(),
		Title:           input.Title,
		Start:           input.Start,
		DurationMinutes: input.DurationMinutes,
		Category:        input.Category,
		Status:          status,
		RelatedPersonID: input.RelatedPersonID,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       deps.Now(),
	}

	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_scheduled", "event_id", e.ID, "category", e.Category, "start", e.Start, "created_by", input.CreatedBy)
	return e, nil
}

// --- Edit Event ---

// EditEventInput carries input for the edit event orchestrator.
type EditEventInput struct {
	EventID         string
	Title           string
	Start           time.Time
	DurationMinutes int
	Category        string
	Status          string
	RelatedPersonID string
	// ClearRelatedPerson signals explicit detaching of the related person.
	ClearRelatedPerson bool
}

// EditEventDeps holds dependencies for EditEvent.
type EditEventDeps struct {
	EventStore EventStoreForOrchestrator
}

// ExecuteEditEvent updates fields on an existing event.
// Partial-update semantics:
//   - Title, Category, Status, RelatedPersonID: only updated when the input value is non-empty.
//   - Start: only updated when non-zero; DurationMinutes: only updated when > 0.
//   - RelatedPersonID can be cleared via ClearRelatedPerson.
//
// PRE: EventID must be non-empty; event must exist
// POST: Event fields updated, dashboards notified via the store
func ExecuteEditEvent(ctx context.Context, input EditEventInput, deps EditEventDeps) (event.Event, error) {
	if input.EventID == "" {
		return event.Event{}, errors.New("event ID is required")
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return event.Event{}, err
	}

	if input.Title != "" {
		e.Title = input.Title
	}
	if !input.Start.IsZero() {
		e.Start = input.Start
	}
	if input.DurationMinutes > 0 {
		e.DurationMinutes = input.DurationMinutes
	}
	if input.Category != "" {
		e.Category = input.Category
	}
	if input.Status != "" {
		e.Status = input.Status
	}
	if input.RelatedPersonID != "" {
		e.RelatedPersonID = input.RelatedPersonID
	}
	if input.ClearRelatedPerson {
		e.RelatedPersonID = ""
	}

	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_edited", "event_id", e.ID, "title", e.Title)
	return e, nil
}

// --- Cancel Event ---

// CancelEventInput carries input for the cancel event orchestrator.
type CancelEventInput struct {
	EventID string
}

// CancelEventDeps holds dependencies for CancelEvent.
type CancelEventDeps struct {
	EventStore EventStoreForOrchestrator
}

// ExecuteCancelEvent marks an event cancelled. The event stays on the
// calendar; removal is a separate, explicit action.
// PRE: EventID must be non-empty; event must exist
// POST: Event status is cancelled
func ExecuteCancelEvent(ctx context.Context, input CancelEventInput, deps CancelEventDeps) (event.Event, error) {
	if input.EventID == "" {
		return event.Event{}, errors.New("event ID is required")
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return event.Event{}, err
	}

	e.Status = event.StatusCancelled

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_cancelled", "event_id", e.ID)
	return e, nil
}

// --- Remove Event ---

// RemoveEventInput carries input for the remove event orchestrator.
type RemoveEventInput struct {
	EventID string
}

// RemoveEventDeps holds dependencies for RemoveEvent.
type RemoveEventDeps struct {
	EventStore EventStoreForOrchestrator
}

// ExecuteRemoveEvent deletes an event. Removal is idempotent: removing an
// already-absent event succeeds, which keeps bulk dashboard operations simple.
// PRE: EventID must be non-empty
// POST: Event absent from the store
func ExecuteRemoveEvent(ctx context.Context, input RemoveEventInput, deps RemoveEventDeps) error {
	if input.EventID == "" {
		return errors.New("event ID is required")
	}

	if err := deps.EventStore.Delete(ctx, input.EventID); err != nil {
		return err
	}

	slog.Info("event_event", "event", "event_removed", "event_id", input.EventID)
	return nil
}
