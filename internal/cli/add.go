package cli

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/calendar"
)

// apply copies the non-empty flag values onto e. Times are normalized to
// zero-padded HH:MM; a malformed time is reported before the store sees it.
func (f EventFields) apply(e calendar.Event) (calendar.Event, error) {
	if f.Title != "" {
		e.Title = f.Title
	}
	if f.Description != "" {
		e.Description = f.Description
	}
	if f.Start != "" {
		t, err := calendar.NormalizeClock(f.Start)
		if err != nil {
			return e, err
		}
		e.StartTime = t
	}
	if f.End != "" {
		t, err := calendar.NormalizeClock(f.End)
		if err != nil {
			return e, err
		}
		e.EndTime = t
	}
	if f.Category != "" {
		c, err := calendar.ParseCategory(f.Category)
		if err != nil {
			return e, err
		}
		e.Category = c
	}
	return e, nil
}

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if c.Title == "" {
		return fmt.Errorf("--title is required for add command")
	}
	if c.Start == "" || c.End == "" {
		return fmt.Errorf("--start and --end are required for add command")
	}

	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the add logic against a provided session (used by tests).
func (c *AddCommand) executeWithSession(s *session) error {
	date, err := s.resolveDate(c.Date)
	if err != nil {
		return err
	}

	category, err := calendar.ParseCategory(s.cfg.Calendar.DefaultCategory)
	if err != nil {
		return err
	}
	candidate, err := c.EventFields.apply(calendar.Event{Category: category})
	if err != nil {
		return err
	}
	// The description is required; a bare title doubles as one.
	if candidate.Description == "" {
		candidate.Description = candidate.Title
	}

	events, err := s.store.Add(context.Background(), date, candidate)
	if err != nil {
		return fmt.Errorf("adding event: %w", err)
	}
	added := events[len(events)-1]
	log.Debugf("Added event %s on %s", added.ID, date)

	if c.globals.JSON {
		return writeJSON(eventJSON{Position: len(events), Event: added})
	}

	fmt.Printf("Added event %s on %s\n", added.ID, date)
	printEventLine(len(events), added)
	return nil
}
