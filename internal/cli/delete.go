package cli

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the delete logic against a provided session (used by tests).
func (c *DeleteCommand) executeWithSession(s *session) error {
	date, pos, err := s.resolveTarget(c.EventTarget)
	if err != nil {
		return err
	}

	day := s.store.EventsFor(date)
	if pos >= len(day) {
		return fmt.Errorf("no event at position %d on %s", pos+1, date)
	}
	removed := day[pos]

	remaining, err := s.store.Remove(context.Background(), date, pos)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	log.Debugf("Deleted event %s on %s", removed.ID, date)

	if c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"deleted":   removed.ID,
			"date":      date.String(),
			"remaining": len(remaining),
		})
	}

	fmt.Printf("Deleted %q from %s (%d left)\n", removed.Title, date, len(remaining))
	return nil
}
