package cli

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Execute implements the go-flags Commander interface for EditCommand.
func (c *EditCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the edit logic against a provided session (used by tests).
func (c *EditCommand) executeWithSession(s *session) error {
	if c.EventFields == (EventFields{}) {
		return fmt.Errorf("nothing to change: pass at least one of --title, --desc, --start, --end, --category")
	}

	date, pos, err := s.resolveTarget(c.EventTarget)
	if err != nil {
		return err
	}

	day := s.store.EventsFor(date)
	if pos >= len(day) {
		return fmt.Errorf("no event at position %d on %s", pos+1, date)
	}

	candidate, err := c.EventFields.apply(day[pos])
	if err != nil {
		return err
	}

	events, err := s.store.Update(context.Background(), date, pos, candidate)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	updated := events[pos]
	log.Debugf("Updated event %s on %s", updated.ID, date)

	if c.globals.JSON {
		return writeJSON(eventJSON{Position: pos + 1, Event: updated})
	}

	fmt.Printf("Updated event %s on %s\n", updated.ID, date)
	printEventLine(pos+1, updated)
	return nil
}
