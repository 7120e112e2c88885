package event

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// TestEvent_Validate tests Event validation rules.
func TestEvent_Validate(t *testing.T) {
	valid := Event{
		ID:              "e1",
		Title:           "Anatomy",
		Start:           time.Date(2024, 12, 15, 10, 0, 0, 0, time.Local),
		DurationMinutes: 60,
		Category:        CategoryLesson,
		Status:          StatusScheduled,
		CreatedBy:       "coach-1",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got: %v", err)
	}

	tests := []struct {
		name    string
		modify  func(e *Event)
		wantErr error
	}{
		{"empty title", func(e *Event) { e.Title = "" }, ErrEmptyTitle},
		{"title too long", func(e *Event) { e.Title = strings.Repeat("x", MaxTitleLength+1) }, ErrTitleTooLong},
		{"missing start", func(e *Event) { e.Start = time.Time{} }, ErrMissingStart},
		{"zero duration", func(e *Event) { e.DurationMinutes = 0 }, ErrInvalidDuration},
		{"negative duration", func(e *Event) { e.DurationMinutes = -30 }, ErrInvalidDuration},
		{"unknown category", func(e *Event) { e.Category = "party" }, ErrInvalidCategory},
		{"empty category", func(e *Event) { e.Category = "" }, ErrInvalidCategory},
		{"unknown status", func(e *Event) { e.Status = "maybe" }, ErrInvalidStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.modify(&e)
			if err := e.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

// TestEvent_End tests end-time computation.
func TestEvent_End(t *testing.T) {
	e := Event{Start: time.Date(2024, 12, 15, 10, 0, 0, 0, time.Local), DurationMinutes: 90}
	want := time.Date(2024, 12, 15, 11, 30, 0, 0, time.Local)
	if !e.End().Equal(want) {
		t.Errorf("expected %v, got %v", want, e.End())
	}
}

// TestDominantCategory_Empty tests that no events yields no category.
func TestDominantCategory_Empty(t *testing.T) {
	if c, ok := DominantCategory(nil); ok || c != "" {
		t.Errorf("expected none for empty input, got %q/%v", c, ok)
	}
}

// TestDominantCategory_Priority tests the fixed priority table.
func TestDominantCategory_Priority(t *testing.T) {
	exam := Event{Category: CategoryExam}
	lesson := Event{Category: CategoryLesson}
	consult := Event{Category: CategoryConsultation}
	group := Event{Category: CategoryGroup}
	online := Event{Category: CategoryOnline}
	review := Event{Category: CategoryReview}

	tests := []struct {
		name   string
		events []Event
		want   string
	}{
		{"exam beats lesson", []Event{lesson, exam}, CategoryExam},
		{"exam beats lesson either order", []Event{exam, lesson}, CategoryExam},
		{"lesson beats consultation", []Event{consult, lesson}, CategoryLesson},
		{"consultation beats group", []Event{group, consult}, CategoryConsultation},
		{"group beats online", []Event{online, group}, CategoryGroup},
		{"single event wins", []Event{review}, CategoryReview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DominantCategory(tt.events)
			if !ok || got != tt.want {
				t.Errorf("expected %s, got %s/%v", tt.want, got, ok)
			}
		})
	}
}

// TestDominantCategory_TieFirstOccurrence tests that equal-priority
// categories resolve to the first one in the input sequence.
func TestDominantCategory_TieFirstOccurrence(t *testing.T) {
	got, ok := DominantCategory([]Event{
		{Category: CategoryReview},
		{Category: CategoryOnline},
		{Category: CategoryPractice},
	})
	if !ok || got != CategoryReview {
		t.Errorf("expected first-occurrence tie-break (review), got %s", got)
	}
}

// TestDominantCategory_UnknownRanksLast tests that an unrecognized category
// loses to any known one but still wins alone.
func TestDominantCategory_UnknownRanksLast(t *testing.T) {
	got, _ := DominantCategory([]Event{{Category: "mystery"}, {Category: CategoryPractice}})
	if got != CategoryPractice {
		t.Errorf("expected practice to beat unknown category, got %s", got)
	}
	got, ok := DominantCategory([]Event{{Category: "mystery"}})
	if !ok || got != "mystery" {
		t.Errorf("expected lone unknown category to be returned, got %s/%v", got, ok)
	}
}
