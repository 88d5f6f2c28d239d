package cli

import (
	"fmt"
	"strings"

	"github.com/runnerr0/calplan/internal/calendar"
)

// searchResultJSON is the JSON output structure for the search command.
type searchResultJSON struct {
	Keyword string    `json:"keyword"`
	Days    []dayJSON `json:"days"`
	Total   int       `json:"total"`
}

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the search logic against a provided session (used by tests).
func (c *SearchCommand) executeWithSession(s *session) error {
	keyword := strings.Join(c.Args.Keyword, " ")

	var dates []calendar.DateKey
	if c.Month != "" {
		ym, err := calendar.ParseYearMonth(c.Month)
		if err != nil {
			return err
		}
		for d := 1; d <= ym.Days(); d++ {
			dates = append(dates, calendar.DateKey{Year: ym.Year, Month: int(ym.Month), Day: d})
		}
	} else {
		date, err := s.resolveDate(c.Date)
		if err != nil {
			return err
		}
		dates = []calendar.DateKey{date}
	}

	result := searchResultJSON{Keyword: strings.TrimSpace(keyword), Days: []dayJSON{}}
	for _, date := range dates {
		matched := s.store.Search(date, keyword)
		if len(matched) == 0 {
			continue
		}
		// Positions refer to the full day list, not the filtered one.
		day := dayJSON{Date: date.String(), Events: make([]eventJSON, 0, len(matched))}
		for _, e := range matched {
			pos, err := s.store.IndexOf(date, e.ID)
			if err != nil {
				return err
			}
			day.Events = append(day.Events, eventJSON{Position: pos + 1, Event: e})
		}
		result.Days = append(result.Days, day)
		result.Total += len(matched)
	}

	if c.globals.JSON {
		return writeJSON(result)
	}

	if result.Total == 0 {
		fmt.Println("No matching events")
		return nil
	}
	for i, day := range result.Days {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(day.Date)
		for _, e := range day.Events {
			printEventLine(e.Position, e.Event)
		}
	}
	fmt.Printf("\n%d result(s)\n", result.Total)
	return nil
}
