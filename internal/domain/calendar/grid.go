package calendar

import "time"

// GridSize is the fixed number of cells in a month grid (6 weeks x 7 days).
// Dashboards render a fixed 6x7 grid, so this is a hard invariant of
// GenerateGrid, not an approximation.
const GridSize = 42

// DaysPerWeek is the number of columns in the grid. Weeks start on Monday.
const DaysPerWeek = 7

// Day is a single cell of a month grid.
// INVARIANT: Date is truncated to midnight in the location it was built with.
type Day struct {
	Date           time.Time
	InCurrentMonth bool
}

// GenerateGrid builds the 42-cell grid for the given month.
// Cells before the 1st are the trailing days of the previous month, cells
// after the last day pad with the leading days of the next month.
// PRE: month is a valid time.Month; year is any calendar year
// POST: returns exactly GridSize cells in chronological order; the cells with
// InCurrentMonth=true are exactly the days of (year, month)
func GenerateGrid(year int, month time.Month) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)

	// Monday-relative offset of the 1st: Monday=0 ... Sunday=6.
	offset := (int(first.Weekday()) + 6) % DaysPerWeek

	grid := make([]Day, 0, GridSize)
	cursor := first.AddDate(0, 0, -offset)
	for len(grid) < GridSize {
		grid = append(grid, Day{
			Date:           cursor,
			InCurrentMonth: cursor.Month() == month && cursor.Year() == year,
		})
		cursor = cursor.AddDate(0, 0, 1)
	}
	return grid
}

// DaysInMonth returns the number of days in the given month.
// PRE: month is a valid time.Month
// POST: returns 28..31
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// SameDate reports whether two instants fall on the same calendar date,
// ignoring time of day.
// INVARIANT: comparison uses each value's own location
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
