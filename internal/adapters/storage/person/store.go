package person

import (
	"context"
	"errors"

	domain "coachdesk/internal/domain/person"
)

// ErrNotFound is returned when a person does not exist.
var ErrNotFound = errors.New("person not found")

// Store persists Person state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Person, error)
	Save(ctx context.Context, value domain.Person) error
	Delete(ctx context.Context, id string) error
	ListByRole(ctx context.Context, role string) ([]domain.Person, error)
}
