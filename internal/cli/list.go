package cli

import (
	"fmt"

	"github.com/runnerr0/calplan/internal/calendar"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the list logic against a provided session (used by tests).
func (c *ListCommand) executeWithSession(s *session) error {
	if c.Month != "" {
		ym, err := calendar.ParseYearMonth(c.Month)
		if err != nil {
			return err
		}
		return c.listMonth(s, ym)
	}

	date, err := s.resolveDate(c.Date)
	if err != nil {
		return err
	}
	events := s.store.EventsFor(date)

	if c.globals.JSON {
		return writeJSON(toDayJSON(date, events))
	}
	printDay(date, events, s.loc)
	return nil
}

func (c *ListCommand) listMonth(s *session, ym calendar.YearMonth) error {
	byDay := groupByDay(s.store.EventsInMonth(ym))

	if c.globals.JSON {
		out := make([]dayJSON, len(byDay))
		for i, g := range byDay {
			out[i] = toDayJSON(g.date, g.events)
		}
		return writeJSON(out)
	}

	fmt.Printf("%s %d\n", ym.Month, ym.Year)
	if len(byDay) == 0 {
		fmt.Println("No events")
		return nil
	}
	for _, g := range byDay {
		fmt.Println()
		printDay(g.date, g.events, s.loc)
	}
	return nil
}

type dayGroup struct {
	date   calendar.DateKey
	events []calendar.Event
}

// groupByDay folds an ordered month listing back into per-day lists.
func groupByDay(dated []calendar.DatedEvent) []dayGroup {
	var groups []dayGroup
	for _, de := range dated {
		if n := len(groups); n > 0 && groups[n-1].date == de.Date {
			groups[n-1].events = append(groups[n-1].events, de.Event)
			continue
		}
		groups = append(groups, dayGroup{date: de.Date, events: []calendar.Event{de.Event}})
	}
	return groups
}
