package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/calendar"
	"github.com/runnerr0/calplan/internal/export"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs the export logic against a provided session (used by tests).
func (c *ExportCommand) executeWithSession(s *session) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	if c.Date != "" && c.Month != "" {
		return fmt.Errorf("--date and --month are mutually exclusive")
	}

	var (
		events     []calendar.DatedEvent
		name       string
		monthScope = c.Month != ""
	)
	if monthScope {
		ym, err := calendar.ParseYearMonth(c.Month)
		if err != nil {
			return err
		}
		events = s.store.EventsInMonth(ym)
		name = export.MonthFileName(ym, format)
	} else {
		date, err := s.resolveDate(c.Date)
		if err != nil {
			return err
		}
		for i, e := range s.store.EventsFor(date) {
			events = append(events, calendar.DatedEvent{Date: date, Position: i, Event: e})
		}
		name = export.DayFileName(date, format)
	}

	var buf bytes.Buffer
	switch format {
	case export.FormatJSON:
		err = export.WriteJSON(&buf, events, monthScope)
	case export.FormatCSV:
		err = export.WriteCSV(&buf, events, monthScope)
	case export.FormatICS:
		err = export.WriteICS(&buf, events, s.loc, s.clock.Now())
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}

	if c.Out == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	path, err := c.outputPath(s, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	log.Debugf("Exported %d event(s) to %s", len(events), path)

	if c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"path":   path,
			"format": string(format),
			"events": len(events),
		})
	}
	fmt.Printf("Exported %d event(s) to %s\n", len(events), path)
	return nil
}

// outputPath resolves --out: empty uses the default name in export.dir, a
// directory gets the default name, and a bare file name goes into export.dir.
func (c *ExportCommand) outputPath(s *session, defaultName string) (string, error) {
	dir, err := s.cfg.ExportDir()
	if err != nil {
		return "", err
	}

	switch {
	case c.Out == "":
		return filepath.Join(dir, defaultName), nil
	case isDir(c.Out):
		return filepath.Join(c.Out, defaultName), nil
	case filepath.Dir(c.Out) == ".":
		return filepath.Join(dir, c.Out), nil
	default:
		return c.Out, nil
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
