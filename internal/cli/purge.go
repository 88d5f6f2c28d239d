package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/calendar"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// confirm asks for "PURGE" on the configured input.
func (c *PurgeCommand) confirm() error {
	fmt.Println("⚠ WARNING: This will permanently delete ALL calplan data.")
	fmt.Println("  - All events on every day")
	fmt.Println("  - The saved month and selected day")
	fmt.Println()
	fmt.Println("This action cannot be undone.")
	fmt.Println()
	fmt.Print(`Type "PURGE" to confirm: `)

	var in io.Reader = os.Stdin
	if c.in != nil {
		in = c.in
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return fmt.Errorf("aborted: no input received")
	}
	if strings.TrimSpace(scanner.Text()) != "PURGE" {
		return fmt.Errorf("aborted: confirmation text did not match")
	}
	return nil
}

// executeWithSession runs the purge logic against a provided session (used by tests).
func (c *PurgeCommand) executeWithSession(s *session) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}
	if !c.Force {
		if err := c.confirm(); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}
	if _, err := s.kv.Delete(ctx, calendar.ViewKey); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}
	s.nav.Select(nil)
	s.nav.Today()
	log.Debugf("Purged all data in %s", s.dbPath)

	if c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"purged":  true,
			"message": "all data deleted",
		})
	}

	fmt.Println("Purged all data. calplan is empty.")
	return nil
}
