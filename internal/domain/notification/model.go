package notification

import (
	"errors"
	"strings"
	"time"
)

// Notification categories.
const (
	CategorySystem   = "system"   // platform announcements
	CategorySchedule = "schedule" // event created/changed/cancelled
	CategorySession  = "session"  // meeting session activity
	CategoryRequest  = "request"  // lesson request submitted/decided
	CategoryMessage  = "message"  // new chat or thread activity
)

// Priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Max length constants.
const (
	MaxTitleLength   = 200
	MaxMessageLength = 2000
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{
	CategorySystem, CategorySchedule, CategorySession, CategoryRequest, CategoryMessage,
}

// ValidPriorities contains all valid priority values.
var ValidPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Domain errors
var (
	ErrEmptyTitle      = errors.New("notification title cannot be empty")
	ErrTitleTooLong    = errors.New("notification title cannot exceed 200 characters")
	ErrEmptyMessage    = errors.New("notification message cannot be empty")
	ErrMessageTooLong  = errors.New("notification message cannot exceed 2000 characters")
	ErrInvalidCategory = errors.New("notification category must be one of: system, schedule, session, request, message")
	ErrInvalidPriority = errors.New("notification priority must be one of: low, medium, high")
)

// Notification is an informational record surfaced on a dashboard. It is
// created by the surrounding application; the feed only toggles the read
// flag or deletes it. Message content supports Markdown formatting.
type Notification struct {
	ID              string
	Category        string
	Title           string
	Message         string // Markdown content
	Priority        string // low, medium, high
	RelatedPersonID string // optional coach or student this concerns
	IsRead          bool
	CreatedAt       time.Time
}

// Validate checks if the Notification has valid data.
// PRE: Notification struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notification) Validate() error {
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if len(n.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if n.Message == "" {
		return ErrEmptyMessage
	}
	if len(n.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if !isValidCategory(n.Category) {
		return ErrInvalidCategory
	}
	if !isValidPriority(n.Priority) {
		return ErrInvalidPriority
	}
	return nil
}

// MatchesSearch reports whether the notification matches a free-text query.
// The query is compared case-insensitively against the title, the message
// body, and the related person's display name when one is supplied.
// INVARIANT: Notification fields are not mutated
func (n *Notification) MatchesSearch(query, relatedPersonName string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Message), q) {
		return true
	}
	if relatedPersonName != "" && strings.Contains(strings.ToLower(relatedPersonName), q) {
		return true
	}
	return false
}

// IsHighPriority returns true for notifications that warrant email delivery.
// INVARIANT: Notification fields are not mutated
func (n *Notification) IsHighPriority() bool {
	return n.Priority == PriorityHigh
}

func isValidCategory(c string) bool {
	for _, v := range ValidCategories {
		if v == c {
			return true
		}
	}
	return false
}

func isValidPriority(p string) bool {
	for _, v := range ValidPriorities {
		if v == p {
			return true
		}
	}
	return false
}
