package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	emailAdapter "coachdesk/internal/adapters/email"
	"coachdesk/internal/domain/notification"
)

// NotificationStoreForOrchestrator defines the store interface needed by
// notification orchestrators.
type NotificationStoreForOrchestrator interface {
	Save(ctx context.Context, n notification.Notification) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

// AccountEmailLookup resolves the delivery address for high-priority mail.
type AccountEmailLookup interface {
	GetEmailByPersonID(ctx context.Context, personID string) (name string, email string, err error)
}

// --- Create Notification ---

// CreateNotificationInput carries input for the create notification orchestrator.
type CreateNotificationInput struct {
	Category        string
	Title           string
	Message         string // Markdown
	Priority        string // defaults to medium when empty
	RelatedPersonID string
}

// CreateNotificationDeps holds dependencies for CreateNotification.
type CreateNotificationDeps struct {
	NotificationStore NotificationStoreForOrchestrator
	EmailSender       emailAdapter.Sender // nil disables email delivery
	EmailLookup       AccountEmailLookup
	FromAddress       string
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteCreateNotification records a notification for the dashboards.
// High-priority notifications with a related person are additionally
// delivered by email; delivery failure is logged, never surfaced, because
// the feed entry is the source of truth.
// PRE: Category, Title, Message must be valid per domain rules
// POST: Notification persisted unread; email sent for high priority when configured
func ExecuteCreateNotification(ctx context.Context, input CreateNotificationInput, deps CreateNotificationDeps) (notification.Notification, error) {
	priority := input.Priority
	if priority == "" {
		priority = notification.PriorityMedium
	}

	n := notification.Notification{
		ID:              deps.GenerateID(),
		Category:        input.Category,
		Title:           input.Title,
		Message:         input.Message,
		Priority:        priority,
		RelatedPersonID: input.RelatedPersonID,
		CreatedAt:       deps.Now(),
	}

	if err := n.Validate(); err != nil {
		return notification.Notification{}, err
	}

	if err := deps.NotificationStore.Save(ctx, n); err != nil {
		return notification.Notification{}, err
	}

	if n.IsHighPriority() && n.RelatedPersonID != "" && deps.EmailSender != nil && deps.EmailLookup != nil {
		sendNotificationEmail(ctx, n, deps)
	}

	slog.Info("notification_event", "event", "notification_created", "notification_id", n.ID, "category", n.Category, "priority", n.Priority)
	return n, nil
}

func sendNotificationEmail(ctx context.Context, n notification.Notification, deps CreateNotificationDeps) {
	name, addr, err := deps.EmailLookup.GetEmailByPersonID(ctx, n.RelatedPersonID)
	if err != nil || addr == "" {
		slog.Warn("notification_email_lookup_failed", "person_id", n.RelatedPersonID, "error", err)
		return
	}

	_, err = deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{addr},
		From:    deps.FromAddress,
		Subject: n.Title,
		HTML:    emailAdapter.RenderMarkdown(n.Message),
	})
	if err != nil {
		slog.Error("notification_event", "event", "notification_email_failed", "notification_id", n.ID, "error", err)
		return
	}

	slog.Info("notification_event", "event", "notification_email_sent", "notification_id", n.ID, "recipient", name)
}

// --- Mark Read ---

// MarkNotificationReadInput carries input for the mark read orchestrator.
type MarkNotificationReadInput struct {
	NotificationID string
}

// MarkNotificationReadDeps holds dependencies for MarkNotificationRead.
type MarkNotificationReadDeps struct {
	NotificationStore NotificationStoreForOrchestrator
}

// ExecuteMarkNotificationRead marks one notification read. Marking an
// already-read notification is a no-op; an unknown ID is an error.
// PRE: NotificationID must be non-empty
// POST: Notification is read
func ExecuteMarkNotificationRead(ctx context.Context, input MarkNotificationReadInput, deps MarkNotificationReadDeps) error {
	if input.NotificationID == "" {
		return errors.New("notification ID is required")
	}

	if err := deps.NotificationStore.MarkRead(ctx, input.NotificationID); err != nil {
		return err
	}

	slog.Info("notification_event", "event", "notification_read", "notification_id", input.NotificationID)
	return nil
}

// --- Mark All Read ---

// MarkAllNotificationsReadDeps holds dependencies for MarkAllNotificationsRead.
type MarkAllNotificationsReadDeps struct {
	NotificationStore NotificationStoreForOrchestrator
}

// ExecuteMarkAllNotificationsRead marks every notification read.
// POST: No unread notifications remain
func ExecuteMarkAllNotificationsRead(ctx context.Context, deps MarkAllNotificationsReadDeps) error {
	if err := deps.NotificationStore.MarkAllRead(ctx); err != nil {
		return err
	}

	slog.Info("notification_event", "event", "notifications_all_read")
	return nil
}

// --- Delete Notification ---

// DeleteNotificationInput carries input for the delete notification orchestrator.
type DeleteNotificationInput struct {
	NotificationID string
}

// DeleteNotificationDeps holds dependencies for DeleteNotification.
type DeleteNotificationDeps struct {
	NotificationStore NotificationStoreForOrchestrator
}

// ExecuteDeleteNotification removes a notification. Idempotent: deleting an
// absent notification succeeds.
// PRE: NotificationID must be non-empty
// POST: Notification absent from the store
func ExecuteDeleteNotification(ctx context.Context, input DeleteNotificationInput, deps DeleteNotificationDeps) error {
	if input.NotificationID == "" {
		return errors.New("notification ID is required")
	}

	if err := deps.NotificationStore.Delete(ctx, input.NotificationID); err != nil {
		return err
	}

	slog.Info("notification_event", "event", "notification_deleted", "notification_id", input.NotificationID)
	return nil
}
