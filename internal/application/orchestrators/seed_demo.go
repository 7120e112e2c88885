package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"coachdesk/internal/adapters/storage/kv"
	"coachdesk/internal/domain/event"
	"coachdesk/internal/domain/lecture"
	"coachdesk/internal/domain/notification"
	"coachdesk/internal/domain/person"
)

// PersonStoreForSeed defines the store interface needed by the demo seeder.
type PersonStoreForSeed interface {
	Save(ctx context.Context, p person.Person) error
	ListByRole(ctx context.Context, role string) ([]person.Person, error)
}

// SeedDemoDeps holds dependencies for SeedDemoData.
type SeedDemoDeps struct {
	PersonStore       PersonStoreForSeed
	EventStore        EventStoreForOrchestrator
	NotificationStore NotificationStoreForOrchestrator
	Lectures          kv.Repository
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteSeedDemoData populates a development database with a couple of
// coaches, students, calendar events, notifications and lectures. Skipped
// entirely when any coach already exists, so repeated startups stay clean.
// PRE: Database is initialized
// POST: Demo records present exactly once
func ExecuteSeedDemoData(ctx context.Context, deps SeedDemoDeps) error {
	coaches, err := deps.PersonStore.ListByRole(ctx, person.RoleCoach)
	if err != nil {
		return err
	}
	if len(coaches) > 0 {
		return nil // Already seeded
	}

	now := deps.Now()

	coach := person.Person{
		ID:     deps.GenerateID(),
		Name:   "Alex Morgan",
		Email:  "alex.morgan@example.com",
		Role:   person.RoleCoach,
		Status: person.StatusActive,
	}
	student := person.Person{
		ID:     deps.GenerateID(),
		Name:   "Jamie Lee",
		Email:  "jamie.lee@example.com",
		Role:   person.RoleStudent,
		Status: person.StatusActive,
	}
	for _, p := range []person.Person{coach, student} {
		if err := deps.PersonStore.Save(ctx, p); err != nil {
			return err
		}
	}

	events := []event.Event{
		{
			ID:              deps.GenerateID(),
			Title:           "Anatomy",
			Start:           time.Date(now.Year(), now.Month(), 15, 10, 0, 0, 0, time.Local),
			DurationMinutes: 60,
			Category:        event.CategoryLesson,
			Status:          event.StatusScheduled,
			RelatedPersonID: student.ID,
			CreatedBy:       coach.ID,
			CreatedAt:       now,
		},
		{
			ID:              deps.GenerateID(),
			Title:           "Midterm exam",
			Start:           time.Date(now.Year(), now.Month(), 15, 14, 0, 0, 0, time.Local),
			DurationMinutes: 90,
			Category:        event.CategoryExam,
			Status:          event.StatusConfirmed,
			RelatedPersonID: student.ID,
			CreatedBy:       coach.ID,
			CreatedAt:       now,
		},
		{
			ID:              deps.GenerateID(),
			Title:           "Group review",
			Start:           time.Date(now.Year(), now.Month(), 22, 17, 0, 0, 0, time.Local),
			DurationMinutes: 45,
			Category:        event.CategoryGroup,
			Status:          event.StatusScheduled,
			CreatedBy:       coach.ID,
			CreatedAt:       now,
		},
	}
	for _, e := range events {
		if err := deps.EventStore.Save(ctx, e); err != nil {
			return err
		}
	}

	welcome := notification.Notification{
		ID:        deps.GenerateID(),
		Category:  notification.CategorySystem,
		Title:     "Welcome to CoachDesk",
		Message:   "Your dashboard is ready. Check the **calendar** for this month's schedule.",
		Priority:  notification.PriorityLow,
		CreatedAt: now,
	}
	if err := deps.NotificationStore.Save(ctx, welcome); err != nil {
		return err
	}

	lectures := []lecture.Lecture{
		{
			ID:              deps.GenerateID(),
			Title:           "Footwork basics",
			Description:     "Introductory drills for the first month.",
			VideoURL:        "https://videos.example.com/footwork-basics",
			DurationMinutes: 22,
			AddedBy:         coach.ID,
			AddedAt:         now,
		},
	}
	if err := kv.SaveLectures(ctx, deps.Lectures, lectures); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "demo_data_seeded", "events", len(events), "lectures", len(lectures))
	return nil
}
