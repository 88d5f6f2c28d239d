package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/calplan/internal/calendar"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string         `json:"version"`
	DatabasePath      string         `json:"database_path"`
	DatabaseSizeBytes int64          `json:"database_size_bytes"`
	TotalEvents       int            `json:"total_events"`
	DaysWithEvents    int            `json:"days_with_events"`
	ByCategory        map[string]int `json:"by_category"`
	FirstDay          string         `json:"first_day,omitempty"`
	LastDay           string         `json:"last_day,omitempty"`
	DisplayedMonth    string         `json:"displayed_month"`
	Selected          string         `json:"selected,omitempty"`
	WeekStart         string         `json:"week_start"`
	Keys              []keyJSON      `json:"keys"`
	ReadError         string         `json:"read_error,omitempty"`
}

type keyJSON struct {
	Key       string `json:"key"`
	SizeBytes int64  `json:"size_bytes"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	s, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return c.executeWithSession(s)
}

// executeWithSession runs status against a provided session (for testing).
func (c *StatusCommand) executeWithSession(s *session) error {
	ctx := context.Background()

	entries, err := s.kv.Entries(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}
	stats := s.store.Stats()

	out := statusJSON{
		Version:           c.version,
		DatabasePath:      s.dbPath,
		DatabaseSizeBytes: s.kv.SizeBytes(ctx),
		TotalEvents:       stats.TotalEvents,
		DaysWithEvents:    stats.Days,
		ByCategory:        make(map[string]int, len(calendar.Categories)),
		DisplayedMonth:    s.nav.Displayed().String(),
		WeekStart:         strings.ToLower(calendar.ParseWeekStart(s.cfg.Calendar.WeekStart).String()),
		Keys:              make([]keyJSON, len(entries)),
	}
	for _, cat := range calendar.Categories {
		out.ByCategory[string(cat)] = stats.ByCategory[cat]
	}
	if stats.TotalEvents > 0 {
		out.FirstDay = stats.First.String()
		out.LastDay = stats.Last.String()
	}
	if d, ok := s.nav.Selected(); ok {
		out.Selected = d.String()
	}
	for i, e := range entries {
		out.Keys[i] = keyJSON{Key: e.Key, SizeBytes: e.Size}
		if !e.UpdatedAt.IsZero() {
			out.Keys[i].UpdatedAt = e.UpdatedAt.UTC().Format(time.RFC3339)
		}
	}
	if err := s.store.LastReadError(); err != nil {
		out.ReadError = err.Error()
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(out)
	}
	c.printStatusHuman(out)
	return nil
}

func (c *StatusCommand) printStatusHuman(out statusJSON) {
	fmt.Println("calplan Status")
	fmt.Println("==============")
	fmt.Printf("Version:       %s\n", out.Version)
	fmt.Printf("Database:      %s (%s)\n", out.DatabasePath, formatBytes(out.DatabaseSizeBytes))
	fmt.Printf("Events:        %d on %d day(s)\n", out.TotalEvents, out.DaysWithEvents)
	if out.TotalEvents > 0 {
		fmt.Printf("First day:     %s\n", out.FirstDay)
		fmt.Printf("Last day:      %s\n", out.LastDay)

		fmt.Println()
		fmt.Println("Categories:")
		cats := make([]string, 0, len(out.ByCategory))
		for cat := range out.ByCategory {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		for _, cat := range cats {
			fmt.Printf("  %-10s %d\n", cat, out.ByCategory[cat])
		}
	}

	fmt.Println()
	fmt.Printf("Showing:       %s\n", out.DisplayedMonth)
	if out.Selected != "" {
		fmt.Printf("Selected:      %s\n", out.Selected)
	} else {
		fmt.Println("Selected:      none")
	}
	fmt.Printf("Week starts:   %s\n", out.WeekStart)

	if out.ReadError != "" {
		fmt.Println()
		fmt.Printf("WARNING: stored events were unreadable and ignored: %s\n", out.ReadError)
	}
}
