package cli

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/calendar"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	if c.Before == "" && c.OlderThan == "" {
		return fmt.Errorf("prune requires --before or --older-than")
	}

	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// cutoff is the first day that survives the prune.
func (c *PruneCommand) cutoff(s *session) (calendar.DateKey, error) {
	switch {
	case c.Before != "" && c.OlderThan != "":
		return calendar.DateKey{}, fmt.Errorf("--before and --older-than are mutually exclusive")
	case c.Before != "":
		return s.resolveDate(c.Before)
	case c.OlderThan != "":
		d, err := parseDuration(c.OlderThan)
		if err != nil {
			return calendar.DateKey{}, err
		}
		return calendar.DateKeyOf(s.clock.Now().Add(-d)), nil
	default:
		return calendar.DateKey{}, fmt.Errorf("prune requires --before or --older-than")
	}
}

// executeWithSession runs the prune logic against a provided session (used by tests).
func (c *PruneCommand) executeWithSession(s *session) error {
	cutoff, err := c.cutoff(s)
	if err != nil {
		return err
	}

	var count int
	if c.DryRun {
		index := s.store.Load()
		for _, d := range index.Dates() {
			if d.Before(cutoff) {
				count += len(index.Day(d))
			}
		}
	} else {
		count, err = s.store.RemoveBefore(context.Background(), cutoff)
		if err != nil {
			return fmt.Errorf("pruning events: %w", err)
		}
		log.Debugf("Pruned %d event(s) before %s", count, cutoff)
	}

	if c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"before":  cutoff.String(),
			"dry_run": c.DryRun,
			"pruned":  count,
		})
	}

	if c.DryRun {
		fmt.Printf("Would prune %d event(s) before %s\n", count, cutoff)
		return nil
	}
	fmt.Printf("Pruned %d event(s) before %s\n", count, cutoff)
	return nil
}
