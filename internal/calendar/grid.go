package calendar

import (
	"strings"
	"time"
)

// Cell is one square of a month grid. Placeholder cells pad the first and
// last week and carry no date.
type Cell struct {
	Index       int
	Day         int
	Placeholder bool

	Date      DateKey
	Today     bool
	Weekend   bool
	Selected  bool
	HasEvents bool
}

// Grid is the month view handed to the renderer.
type Grid struct {
	Month        YearMonth
	WeekStart    time.Weekday
	FirstWeekday int
	DaysInMonth  int
	Cells        []Cell
}

// Weeks splits the cells into rows of seven.
func (g Grid) Weeks() [][]Cell {
	var weeks [][]Cell
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// CellCount is the number of cells needed to show daysInMonth days starting
// firstWeekday columns in, rounded up to whole weeks.
func CellCount(firstWeekday, daysInMonth int) int {
	return (firstWeekday + daysInMonth + 6) / 7 * 7
}

// DayForCell maps cell i to its day of month. ok is false for placeholders.
func DayForCell(i, firstWeekday, daysInMonth int) (day int, ok bool) {
	day = i - firstWeekday + 1
	if day < 1 || day > daysInMonth {
		return 0, false
	}
	return day, true
}

// LayoutCells builds the bare cells (no markers) for a month whose first day
// falls firstWeekday columns in.
func LayoutCells(firstWeekday, daysInMonth int) []Cell {
	n := CellCount(firstWeekday, daysInMonth)
	cells := make([]Cell, n)
	for i := range cells {
		day, ok := DayForCell(i, firstWeekday, daysInMonth)
		cells[i] = Cell{Index: i, Day: day, Placeholder: !ok}
	}
	return cells
}

// FirstWeekdayOf returns the column of day 1 of ym when weeks start on
// weekStart.
func FirstWeekdayOf(ym YearMonth, weekStart time.Weekday) int {
	wd := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) - int(weekStart) + 7) % 7
}

// ParseWeekStart accepts "sunday" or "monday"; anything else is Sunday.
func ParseWeekStart(s string) time.Weekday {
	if strings.EqualFold(strings.TrimSpace(s), "monday") {
		return time.Monday
	}
	return time.Sunday
}
