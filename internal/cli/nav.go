package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/calendar"
)

// Execute implements the go-flags Commander interface for NavCommand.
func (c *NavCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the nav logic against a provided session (used by tests).
// Month moves apply before selection changes; the result is saved.
func (c *NavCommand) executeWithSession(s *session) error {
	if c.Select != "" && c.Clear {
		return fmt.Errorf("--select and --clear are mutually exclusive")
	}
	if c.Prev && c.Next {
		return fmt.Errorf("--prev and --next are mutually exclusive")
	}

	if c.Today {
		s.nav.Today()
	}
	if c.Show != "" {
		ym, err := calendar.ParseYearMonth(c.Show)
		if err != nil {
			return err
		}
		s.nav.Show(ym)
	}
	if c.Prev {
		s.nav.Navigate(calendar.Previous)
	}
	if c.Next {
		s.nav.Navigate(calendar.Next)
	}

	switch {
	case c.Clear:
		s.nav.Select(nil)
	case c.Select != "":
		date, err := s.resolveDate(c.Select)
		if err != nil {
			return err
		}
		s.nav.Select(&date)
	}

	if err := s.saveView(); err != nil {
		return err
	}
	log.Debugf("View saved: %s", s.nav.Displayed())

	return renderMonth(s, c.globals.JSON)
}
