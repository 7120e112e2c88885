package person

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Role constants: the two participant roles in a mentoring relationship.
const (
	RoleCoach   = "coach"
	RoleStudent = "student"
)

// Status constants.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Domain errors
var (
	ErrEmptyName   = errors.New("person name cannot be empty")
	ErrNameTooLong = errors.New("person name cannot exceed 100 characters")
	ErrInvalidRole = errors.New("role must be 'coach' or 'student'")
)

// Person is a directory entry for a coach or student. Events and
// notifications reference people by ID; dashboards display the name.
type Person struct {
	ID        string
	AccountID string
	Name      string
	Email     string
	Role      string // coach, student
	Status    string
}

// Validate checks if the Person has valid data.
// PRE: Person struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !strings.Contains(p.Email, "@") {
		return errors.New("person email must be valid")
	}
	if p.Role != RoleCoach && p.Role != RoleStudent {
		return ErrInvalidRole
	}
	if p.Status != StatusActive && p.Status != StatusInactive {
		return errors.New("status must be 'active' or 'inactive'")
	}
	return nil
}

// IsCoach returns true for coach directory entries.
// INVARIANT: Person fields are not mutated
func (p *Person) IsCoach() bool {
	return p.Role == RoleCoach
}
