package request

import (
	"context"
	"errors"

	domain "coachdesk/internal/domain/request"
)

// ErrNotFound is returned when a lesson request does not exist.
var ErrNotFound = errors.New("lesson request not found")

// Store persists LessonRequest state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.LessonRequest, error)
	Save(ctx context.Context, value domain.LessonRequest) error
	ListPendingForCoach(ctx context.Context, coachID string) ([]domain.LessonRequest, error)
	ListForStudent(ctx context.Context, studentID string) ([]domain.LessonRequest, error)
}
