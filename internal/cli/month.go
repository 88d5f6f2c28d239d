package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/calplan/internal/calendar"
)

type cellJSON struct {
	Day         int    `json:"day,omitempty"`
	Date        string `json:"date,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Today       bool   `json:"today,omitempty"`
	Weekend     bool   `json:"weekend,omitempty"`
	Selected    bool   `json:"selected,omitempty"`
	HasEvents   bool   `json:"has_events,omitempty"`
}

// gridJSON is the JSON output structure for the month command.
type gridJSON struct {
	Month        string       `json:"month"`
	WeekStart    string       `json:"week_start"`
	FirstWeekday int          `json:"first_weekday"`
	DaysInMonth  int          `json:"days_in_month"`
	Selected     string       `json:"selected,omitempty"`
	Weeks        [][]cellJSON `json:"weeks"`
}

// Execute implements the go-flags Commander interface for MonthCommand.
func (c *MonthCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the month logic against a provided session (used by tests).
func (c *MonthCommand) executeWithSession(s *session) error {
	if c.Month != "" {
		ym, err := calendar.ParseYearMonth(c.Month)
		if err != nil {
			return err
		}
		// Shown for this run only; nav changes the saved view.
		s.nav.Show(ym)
	}
	return renderMonth(s, c.globals.JSON)
}

func renderMonth(s *session, asJSON bool) error {
	g := s.nav.Grid()
	selected, hasSelection := s.nav.Selected()

	if asJSON {
		out := gridJSON{
			Month:        g.Month.String(),
			WeekStart:    strings.ToLower(g.WeekStart.String()),
			FirstWeekday: g.FirstWeekday,
			DaysInMonth:  g.DaysInMonth,
		}
		if hasSelection {
			out.Selected = selected.String()
		}
		for _, week := range g.Weeks() {
			row := make([]cellJSON, len(week))
			for i, cell := range week {
				if cell.Placeholder {
					row[i] = cellJSON{Placeholder: true}
					continue
				}
				row[i] = cellJSON{
					Day:       cell.Day,
					Date:      cell.Date.String(),
					Today:     cell.Today,
					Weekend:   cell.Weekend,
					Selected:  cell.Selected,
					HasEvents: cell.HasEvents,
				}
			}
			out.Weeks = append(out.Weeks, row)
		}
		return writeJSON(out)
	}

	fmt.Printf("%s %d\n", g.Month.Month, g.Month.Year)
	fmt.Println(weekHeader(g.WeekStart))
	for _, week := range g.Weeks() {
		var line strings.Builder
		for _, cell := range week {
			line.WriteString(formatCell(cell))
		}
		fmt.Println(strings.TrimRight(line.String(), " "))
	}
	fmt.Println()
	fmt.Println("[n] selected  (n) today  * has events")

	if hasSelection {
		fmt.Println()
		printDay(selected, s.nav.SelectedEvents(), s.loc)
	}
	return nil
}

func weekHeader(weekStart time.Weekday) string {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		name := time.Weekday((int(weekStart) + i) % 7).String()[:2]
		fmt.Fprintf(&b, " %2s  ", name)
	}
	return strings.TrimRight(b.String(), " ")
}

// formatCell renders a five-column cell: bracketed day plus event marker.
func formatCell(cell calendar.Cell) string {
	if cell.Placeholder {
		return "     "
	}
	left, right := " ", " "
	switch {
	case cell.Selected:
		left, right = "[", "]"
	case cell.Today:
		left, right = "(", ")"
	}
	marker := " "
	if cell.HasEvents {
		marker = "*"
	}
	return fmt.Sprintf("%s%2d%s%s", left, cell.Day, right, marker)
}
