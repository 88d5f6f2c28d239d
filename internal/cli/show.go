package cli

import "fmt"

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the show logic against a provided session (used by tests).
func (c *ShowCommand) executeWithSession(s *session) error {
	date, pos, err := s.resolveTarget(c.EventTarget)
	if err != nil {
		return err
	}

	day := s.store.EventsFor(date)
	if pos >= len(day) {
		return fmt.Errorf("no event at position %d on %s", pos+1, date)
	}
	e := day[pos]

	if c.globals.JSON {
		return writeJSON(struct {
			Date string `json:"date"`
			eventJSON
		}{Date: date.String(), eventJSON: eventJSON{Position: pos + 1, Event: e}})
	}

	fmt.Println(e.ID)
	fmt.Printf("Title:       %s\n", e.Title)
	fmt.Printf("Date:        %s (%s)\n", date, date.Time(s.loc).Weekday())
	fmt.Printf("Time:        %s-%s\n", e.StartTime, e.EndTime)
	fmt.Printf("Category:    %s\n", e.Category)
	fmt.Printf("Position:    %d of %d\n", pos+1, len(day))
	fmt.Println()
	fmt.Println(e.Description)
	return nil
}
