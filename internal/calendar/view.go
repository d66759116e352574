package calendar

import "github.com/preston-bernstein/bookplay-admin/internal/domain"

// DayCell is a rendered grid cell.
type DayCell struct {
	Date       string `json:"date,omitempty"`
	Day        int    `json:"day,omitempty"`
	Empty      bool   `json:"empty"`
	IsToday    bool   `json:"isToday,omitempty"`
	IsSelected bool   `json:"isSelected,omitempty"`
	Active     int    `json:"active"`
	Cancelled  int    `json:"cancelled"`
}

// ViewInput selects what the month view shows.
type ViewInput struct {
	Month    Month
	Filter   Filter
	Selected string
	Today    string
}

// MonthView is the calendar read model of a month.
type MonthView struct {
	Month            string           `json:"month"`
	Previous         string           `json:"previous"`
	Next             string           `json:"next"`
	Weekdays         []string         `json:"weekdays"`
	Cells            []DayCell        `json:"cells"`
	Stats            Stats            `json:"stats"`
	MonthStats       Stats            `json:"monthStats"`
	MonthBookings    int              `json:"monthBookings"`
	Results          int              `json:"results"`
	HasFilters       bool             `json:"hasFilters"`
	Selected         string           `json:"selected"`
	SelectedBookings []domain.Booking `json:"selectedBookings"`
}

// BuildMonthView filters the bookings, buckets them and lays the month out.
// Stats and Results cover the whole filtered list; MonthStats and
// MonthBookings only the displayed month.
func BuildMonthView(bookings []domain.Booking, in ViewInput) MonthView {
	filtered := in.Filter.Apply(bookings)
	buckets := BucketByDate(filtered)

	selected := in.Selected
	if selected == "" {
		selected = in.Today
	}

	grid := MonthGrid(in.Month)
	cells := make([]DayCell, 0, len(grid))
	for _, c := range grid {
		if c.Empty() {
			cells = append(cells, DayCell{Empty: true})
			continue
		}
		s := buckets.Stats(c.Date)
		cells = append(cells, DayCell{
			Date:       c.Date,
			Day:        c.Day,
			IsToday:    c.Date == in.Today,
			IsSelected: c.Date == selected,
			Active:     s.Active,
			Cancelled:  s.Cancelled,
		})
	}

	return MonthView{
		Month:            in.Month.String(),
		Previous:         in.Month.Add(-1).String(),
		Next:             in.Month.Add(1).String(),
		Weekdays:         Weekdays,
		Cells:            cells,
		Stats:            Count(filtered),
		MonthStats:       MonthStats(filtered, in.Month),
		MonthBookings:    MonthCount(filtered, in.Month),
		Results:          len(filtered),
		HasFilters:       !in.Filter.IsZero(),
		Selected:         selected,
		SelectedBookings: buckets.For(selected),
	}
}
