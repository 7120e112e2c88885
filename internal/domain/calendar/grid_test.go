package calendar

import (
	"testing"
	"time"
)

// TestGenerateGrid_Size tests that every month produces exactly 42 cells and
// the in-month cell count matches the month length.
func TestGenerateGrid_Size(t *testing.T) {
	for year := 2020; year <= 2027; year++ {
		for month := time.January; month <= time.December; month++ {
			grid := GenerateGrid(year, month)
			if len(grid) != GridSize {
				t.Fatalf("%d-%s: expected %d cells, got %d", year, month, GridSize, len(grid))
			}
			inMonth := 0
			for _, d := range grid {
				if d.InCurrentMonth {
					inMonth++
				}
			}
			if inMonth != DaysInMonth(year, month) {
				t.Errorf("%d-%s: expected %d in-month cells, got %d", year, month, DaysInMonth(year, month), inMonth)
			}
		}
	}
}

// TestGenerateGrid_LeapFebruary tests leap vs non-leap February.
func TestGenerateGrid_LeapFebruary(t *testing.T) {
	count := func(year int) int {
		n := 0
		for _, d := range GenerateGrid(year, time.February) {
			if d.InCurrentMonth {
				n++
			}
		}
		return n
	}
	if got := count(2024); got != 29 {
		t.Errorf("Feb 2024: expected 29 in-month cells, got %d", got)
	}
	if got := count(2023); got != 28 {
		t.Errorf("Feb 2023: expected 28 in-month cells, got %d", got)
	}
}

// TestGenerateGrid_MondayStart tests that the first cell is always a Monday
// and the 1st of the month lands at its Monday-relative offset.
func TestGenerateGrid_MondayStart(t *testing.T) {
	tests := []struct {
		year       int
		month      time.Month
		wantOffset int // index of the 1st within the grid
	}{
		{2024, time.December, 6}, // 1 Dec 2024 is a Sunday
		{2024, time.July, 0},     // 1 Jul 2024 is a Monday
		{2026, time.January, 3},  // 1 Jan 2026 is a Thursday
	}
	for _, tt := range tests {
		grid := GenerateGrid(tt.year, tt.month)
		if grid[0].Date.Weekday() != time.Monday {
			t.Errorf("%d-%s: grid does not start on Monday (got %s)", tt.year, tt.month, grid[0].Date.Weekday())
		}
		if grid[tt.wantOffset].Date.Day() != 1 || !grid[tt.wantOffset].InCurrentMonth {
			t.Errorf("%d-%s: expected the 1st at cell %d, got %v", tt.year, tt.month, tt.wantOffset, grid[tt.wantOffset])
		}
		if tt.wantOffset > 0 && grid[tt.wantOffset-1].InCurrentMonth {
			t.Errorf("%d-%s: cell before the 1st should be padding", tt.year, tt.month)
		}
	}
}

// TestGenerateGrid_Chronological tests that cells are consecutive days.
func TestGenerateGrid_Chronological(t *testing.T) {
	grid := GenerateGrid(2025, time.March)
	for i := 1; i < len(grid); i++ {
		want := grid[i-1].Date.AddDate(0, 0, 1)
		if !grid[i].Date.Equal(want) {
			t.Fatalf("cell %d: expected %v, got %v", i, want, grid[i].Date)
		}
	}
}

// TestGenerateGrid_Restartable tests that repeated calls are independent.
func TestGenerateGrid_Restartable(t *testing.T) {
	a := GenerateGrid(2024, time.February)
	_ = GenerateGrid(1999, time.November)
	b := GenerateGrid(2024, time.February)
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].InCurrentMonth != b[i].InCurrentMonth {
			t.Fatalf("cell %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

// TestSameDate tests date-only comparison.
func TestSameDate(t *testing.T) {
	morning := time.Date(2024, 12, 15, 8, 0, 0, 0, time.Local)
	evening := time.Date(2024, 12, 15, 23, 30, 0, 0, time.Local)
	nextDay := time.Date(2024, 12, 16, 0, 0, 0, 0, time.Local)
	if !SameDate(morning, evening) {
		t.Error("same calendar date should match regardless of time of day")
	}
	if SameDate(evening, nextDay) {
		t.Error("different dates should not match")
	}
}
