package calendar

import "time"

// Weekdays are the column headers of the grid, Monday first.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Cell is one slot of the month grid. Padding cells have Day == 0.
type Cell struct {
	Date string
	Day  int
}

// Empty reports whether the cell is padding.
func (c Cell) Empty() bool {
	return c.Day == 0
}

// LeadingPadding returns how many empty cells precede day 1 in a Monday-first
// week.
func LeadingPadding(m Month) int {
	return (int(m.First().Weekday()) + 6) % 7
}

// MonthGrid lays the month out in whole Monday-first weeks. The result length
// is always a multiple of 7 and holds exactly one non-empty cell per day.
func MonthGrid(m Month) []Cell {
	lead := LeadingPadding(m)
	days := m.Days()

	cells := make([]Cell, 0, 42)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{Date: m.Date(day), Day: day})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{})
	}
	return cells
}

// Weeks splits a grid into rows of seven cells.
func Weeks(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, len(cells)/7)
	for i := 0; i+7 <= len(cells); i += 7 {
		rows = append(rows, cells[i:i+7])
	}
	return rows
}

// Today returns today's YYYY-MM-DD key in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006-01-02")
}
