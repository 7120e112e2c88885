package lecture

import (
	"errors"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxTitleLength = 200
	MaxURLLength   = 2048
)

// Domain errors
var (
	ErrEmptyTitle   = errors.New("lecture title cannot be empty")
	ErrTitleTooLong = errors.New("lecture title cannot exceed 200 characters")
	ErrEmptyURL     = errors.New("lecture video URL cannot be empty")
	ErrURLTooLong   = errors.New("lecture video URL cannot exceed 2048 characters")
)

// Lecture is one entry of the video-lecture catalog. The catalog is
// persisted as a JSON array in the key-value repository; the URL is opaque
// and opened by the dashboard, never dereferenced here.
type Lecture struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"` // Markdown
	VideoURL        string    `json:"video_url"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	AddedBy         string    `json:"added_by,omitempty"`
	AddedAt         time.Time `json:"added_at"`
}

// Validate checks if the Lecture has valid data.
// PRE: Lecture struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Lecture) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrEmptyTitle
	}
	if len(l.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if l.VideoURL == "" {
		return ErrEmptyURL
	}
	if len(l.VideoURL) > MaxURLLength {
		return ErrURLTooLong
	}
	return nil
}
