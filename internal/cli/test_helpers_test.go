package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/calplan/internal/calendar"
	"github.com/runnerr0/calplan/internal/config"
	"github.com/runnerr0/calplan/internal/storage"
)

// testNow is the fixed "now" of every test session: Sunday 2025-06-15.
var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

var june15 = calendar.DateKey{Year: 2025, Month: 6, Day: 15}

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testSession opens a migrated in-memory database and wires a session over
// it with the default config and a fixed clock. Exports go to a temp dir.
func testSession(t *testing.T) *session {
	t.Helper()
	db, err := storage.Open(":memory:", "wal")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	kv, err := storage.NewSQLiteKV(db)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	cfg := config.DefaultConfig()
	cfg.Export.Dir = t.TempDir()

	s := newSession(context.Background(), cfg, kv, calendar.FixedClock{T: testNow})
	s.dbPath = ":memory:"
	return s
}

// reopen builds a fresh session over the same kv store, as the next CLI
// invocation would see it.
func reopen(s *session) *session {
	next := newSession(context.Background(), s.cfg, s.kv, s.clock)
	next.dbPath = s.dbPath
	return next
}

// seed adds events on date through the add command.
func seed(t *testing.T, s *session, date string, fields ...EventFields) {
	t.Helper()
	for _, f := range fields {
		cmd := &AddCommand{Date: date, EventFields: f, globals: &GlobalFlags{}}
		captureOutput(t, func() {
			require.NoError(t, cmd.executeWithSession(s))
		})
	}
}

var (
	standup = EventFields{Title: "Standup", Description: "Daily sync", Start: "09:00", End: "09:15"}
	review  = EventFields{Title: "Review", Description: "Code review", Start: "10:00", End: "11:00"}
	lunch   = EventFields{Title: "Lunch", Description: "With Sam", Start: "12:00", End: "13:00", Category: "personal"}
)

// Decoding targets for JSON output. calendar.Event has its own UnmarshalJSON,
// which would swallow the position field of the embedding output types.
type listedEvent struct {
	Position  int    `json:"position"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Category  string `json:"category"`
}

type listedDay struct {
	Date   string        `json:"date"`
	Events []listedEvent `json:"events"`
}

type searchResult struct {
	Keyword string      `json:"keyword"`
	Days    []listedDay `json:"days"`
	Total   int         `json:"total"`
}
