package calendar

import "time"

// Direction moves the displayed month.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// Navigator tracks the displayed month and the selected day. It reads events
// only through the EventStore it is given.
type Navigator struct {
	store     *EventStore
	clock     Clock
	weekStart time.Weekday

	displayed YearMonth
	selected  *DateKey
}

// NewNavigator starts on the clock's current month with nothing selected.
func NewNavigator(store *EventStore, clock Clock, weekStart time.Weekday) *Navigator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Navigator{
		store:     store,
		clock:     clock,
		weekStart: weekStart,
		displayed: YearMonthOf(clock.Now()),
	}
}

// Navigate moves the displayed month one step. The selection is untouched.
func (n *Navigator) Navigate(dir Direction) {
	step := 1
	if dir == Previous {
		step = -1
	}
	n.displayed = n.displayed.AddMonths(step)
}

// Show displays ym directly.
func (n *Navigator) Show(ym YearMonth) {
	n.displayed = ym
}

// Today displays the clock's current month.
func (n *Navigator) Today() {
	n.displayed = YearMonthOf(n.clock.Now())
}

// Select sets the selected day; nil clears the selection. The day does not
// have to be inside the displayed month.
func (n *Navigator) Select(date *DateKey) {
	if date == nil {
		n.selected = nil
		return
	}
	d := *date
	n.selected = &d
}

// Displayed returns the displayed month.
func (n *Navigator) Displayed() YearMonth {
	return n.displayed
}

// Selected returns the selected day, if any.
func (n *Navigator) Selected() (DateKey, bool) {
	if n.selected == nil {
		return DateKey{}, false
	}
	return *n.selected, true
}

// SelectedEvents returns the events of the selected day, or nil when nothing
// is selected.
func (n *Navigator) SelectedEvents() []Event {
	if n.selected == nil {
		return nil
	}
	return n.store.EventsFor(*n.selected)
}

// Grid builds the displayed month's cells with today, weekend, selection and
// has-events markers.
func (n *Navigator) Grid() Grid {
	ym := n.displayed
	first := FirstWeekdayOf(ym, n.weekStart)
	days := ym.Days()
	today := DateKeyOf(n.clock.Now())

	cells := LayoutCells(first, days)
	for i := range cells {
		c := &cells[i]
		if c.Placeholder {
			continue
		}
		c.Date = DateKey{Year: ym.Year, Month: int(ym.Month), Day: c.Day}
		c.Today = c.Date == today
		wd := c.Date.Time(time.UTC).Weekday()
		c.Weekend = wd == time.Saturday || wd == time.Sunday
		c.Selected = n.selected != nil && *n.selected == c.Date
		c.HasEvents = n.store != nil && n.store.HasEvents(c.Date)
	}

	return Grid{
		Month:        ym,
		WeekStart:    n.weekStart,
		FirstWeekday: first,
		DaysInMonth:  days,
		Cells:        cells,
	}
}
