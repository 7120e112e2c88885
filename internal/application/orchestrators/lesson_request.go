package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coachdesk/internal/domain/event"
	"coachdesk/internal/domain/notification"
	"coachdesk/internal/domain/request"
)

// RequestStoreForOrchestrator defines the store interface needed by
// lesson request orchestrators.
type RequestStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (request.LessonRequest, error)
	Save(ctx context.Context, r request.LessonRequest) error
}

// --- Submit Request ---

// SubmitRequestInput carries input for the submit request orchestrator.
type SubmitRequestInput struct {
	StudentID       string
	CoachID         string
	Category        string
	PreferredStart  time.Time
	DurationMinutes int
	Note            string
}

// SubmitRequestDeps holds dependencies for SubmitRequest.
type SubmitRequestDeps struct {
	RequestStore      RequestStoreForOrchestrator
	NotificationStore NotificationStoreForOrchestrator
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteSubmitRequest records a student's lesson request and notifies the
// addressed coach through the feed.
// PRE: StudentID, CoachID, Category, PreferredStart set; DurationMinutes > 0
// POST: Request persisted pending; one request-category notification created
func ExecuteSubmitRequest(ctx context.Context, input SubmitRequestInput, deps SubmitRequestDeps) (request.LessonRequest, error) {
	r := request.LessonRequest{
		ID:              deps.GenerateID(),
		StudentID:       input.StudentID,
		CoachID:         input.CoachID,
		Category:        input.Category,
		PreferredStart:  input.PreferredStart,
		DurationMinutes: input.DurationMinutes,
		Note:            input.Note,
		Status:          request.StatusPending,
		CreatedAt:       deps.Now(),
	}

	if err := r.Validate(); err != nil {
		return request.LessonRequest{}, err
	}

	if err := deps.RequestStore.Save(ctx, r); err != nil {
		return request.LessonRequest{}, err
	}

	if deps.NotificationStore != nil {
		n := notification.Notification{
			ID:              deps.GenerateID(),
			Category:        notification.CategoryRequest,
			Title:           "New lesson request",
			Message:         "A student requested a " + r.Category + " slot.",
			Priority:        notification.PriorityMedium,
			RelatedPersonID: r.StudentID,
			CreatedAt:       deps.Now(),
		}
		if err := deps.NotificationStore.Save(ctx, n); err != nil {
			slog.Warn("request_notification_failed", "request_id", r.ID, "error", err)
		}
	}

	slog.Info("request_event", "event", "request_submitted", "request_id", r.ID, "student_id", r.StudentID, "coach_id", r.CoachID)
	return r, nil
}

// --- Approve Request ---

// ApproveRequestInput carries input for the approve request orchestrator.
type ApproveRequestInput struct {
	RequestID string
	DeciderID string // AccountID of the approving coach
}

// ApproveRequestDeps holds dependencies for ApproveRequest.
type ApproveRequestDeps struct {
	RequestStore RequestStoreForOrchestrator
	EventStore   EventStoreForOrchestrator
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteApproveRequest approves a pending request and places the matching
// event on the calendar. Approval is the second way an Event comes into
// existence, next to explicit scheduling.
// PRE: RequestID and DeciderID non-empty; request exists and is pending
// POST: Request approved; one scheduled Event created from its fields
func ExecuteApproveRequest(ctx context.Context, input ApproveRequestInput, deps ApproveRequestDeps) (event.Event, error) {
	if input.RequestID == "" {
		return event.Event{}, errors.New("request ID is required")
	}
	if input.DeciderID == "" {
		return event.Event{}, errors.New("decider account ID is required")
	}

	r, err := deps.RequestStore.GetByID(ctx, input.RequestID)
	if err != nil {
		return event.Event{}, err
	}

	if err := r.Approve(input.DeciderID, deps.Now()); err != nil {
		return event.Event{}, err
	}

	e := event.Event{
		ID:              deps.GenerateID(),
		Title:           requestEventTitle(r),
		Start:           r.PreferredStart,
		DurationMinutes: r.DurationMinutes,
		Category:        r.Category,
		Status:          event.StatusScheduled,
		RelatedPersonID: r.StudentID,
		CreatedBy:       input.DeciderID,
		CreatedAt:       deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}
	if err := deps.RequestStore.Save(ctx, r); err != nil {
		return event.Event{}, err
	}

	slog.Info("request_event", "event", "request_approved", "request_id", r.ID, "event_id", e.ID, "decided_by", input.DeciderID)
	return e, nil
}

// --- Decline Request ---

// DeclineRequestInput carries input for the decline request orchestrator.
type DeclineRequestInput struct {
	RequestID string
	DeciderID string
}

// DeclineRequestDeps holds dependencies for DeclineRequest.
type DeclineRequestDeps struct {
	RequestStore RequestStoreForOrchestrator
	Now          func() time.Time
}

// ExecuteDeclineRequest declines a pending request. No event is created.
// PRE: RequestID and DeciderID non-empty; request exists and is pending
// POST: Request declined with decider and decision time recorded
func ExecuteDeclineRequest(ctx context.Context, input DeclineRequestInput, deps DeclineRequestDeps) (request.LessonRequest, error) {
	if input.RequestID == "" {
		return request.LessonRequest{}, errors.New("request ID is required")
	}
	if input.DeciderID == "" {
		return request.LessonRequest{}, errors.New("decider account ID is required")
	}

	r, err := deps.RequestStore.GetByID(ctx, input.RequestID)
	if err != nil {
		return request.LessonRequest{}, err
	}

	if err := r.Decline(input.DeciderID, deps.Now()); err != nil {
		return request.LessonRequest{}, err
	}

	if err := deps.RequestStore.Save(ctx, r); err != nil {
		return request.LessonRequest{}, err
	}

	slog.Info("request_event", "event", "request_declined", "request_id", r.ID, "decided_by", input.DeciderID)
	return r, nil
}

// requestEventTitle derives the calendar title for an approved request.
func requestEventTitle(r request.LessonRequest) string {
	switch r.Category {
	case event.CategoryExam:
		return "Exam"
	case event.CategoryConsultation:
		return "Consultation"
	case event.CategoryGroup:
		return "Group session"
	case event.CategoryOnline:
		return "Online lesson"
	case event.CategoryReview:
		return "Review"
	case event.CategoryPractice:
		return "Practice"
	default:
		return "Lesson"
	}
}
