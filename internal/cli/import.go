package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/calendar"
	"github.com/runnerr0/calplan/internal/export"
)

// importJSON is the JSON output structure for the import command.
type importJSON struct {
	File    string           `json:"file"`
	DryRun  bool             `json:"dry_run"`
	Added   []importedJSON   `json:"added"`
	Skipped []export.Skipped `json:"skipped"`
}

type importedJSON struct {
	Date  string `json:"date"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the import logic against a provided session (used by tests).
// Each candidate goes through the store's add so overlaps are rejected
// individually; a failed write aborts the import.
func (c *ImportCommand) executeWithSession(s *session) error {
	f, err := os.Open(c.Args.File)
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.Args.File, err)
	}
	defer f.Close()

	candidates, skipped, err := export.ReadICS(f, s.loc)
	if err != nil {
		return err
	}

	out := importJSON{File: c.Args.File, DryRun: c.DryRun, Added: []importedJSON{}}
	ctx := context.Background()
	for _, cand := range candidates {
		if c.DryRun {
			if err := cand.Event.Validate(); err != nil {
				skipped = append(skipped, export.Skipped{UID: cand.UID, Summary: cand.Event.Title, Reason: err.Error()})
				continue
			}
			out.Added = append(out.Added, imported(cand.Date, cand.Event))
			continue
		}

		events, err := s.store.Add(ctx, cand.Date, cand.Event)
		if err != nil {
			var writeErr *calendar.StorageWriteError
			if errors.As(err, &writeErr) {
				return fmt.Errorf("importing %s: %w", cand.UID, err)
			}
			skipped = append(skipped, export.Skipped{UID: cand.UID, Summary: cand.Event.Title, Reason: err.Error()})
			continue
		}
		out.Added = append(out.Added, imported(cand.Date, events[len(events)-1]))
	}
	if skipped == nil {
		skipped = []export.Skipped{}
	}
	out.Skipped = skipped
	log.Debugf("Imported %d event(s) from %s, skipped %d", len(out.Added), c.Args.File, len(skipped))

	if c.globals.JSON {
		return writeJSON(out)
	}

	verb := "Imported"
	if c.DryRun {
		verb = "Would import"
	}
	fmt.Printf("%s %d event(s) from %s\n", verb, len(out.Added), c.Args.File)
	for _, a := range out.Added {
		fmt.Printf("  + %s %s-%s  %s\n", a.Date, a.Start, a.End, a.Title)
	}
	if len(skipped) > 0 {
		fmt.Printf("Skipped %d:\n", len(skipped))
		for _, sk := range skipped {
			fmt.Printf("  - %s: %s\n", sk.Summary, sk.Reason)
		}
	}
	return nil
}

func imported(date calendar.DateKey, e calendar.Event) importedJSON {
	return importedJSON{Date: date.String(), ID: e.ID, Title: e.Title, Start: e.StartTime, End: e.EndTime}
}
