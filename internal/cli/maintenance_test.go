package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/calplan/internal/calendar"
)

func TestStatus_EmptyDB(t *testing.T) {
	s := testSession(t)

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "dev"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithSession(s))
	})

	assert.Contains(t, output, "calplan Status")
	assert.Contains(t, output, "Version:       dev")
	assert.Contains(t, output, "Events:        0 on 0 day(s)")
	assert.Contains(t, output, "Showing:       2025-06")
	assert.Contains(t, output, "Selected:      none")
	assert.Contains(t, output, "Week starts:   sunday")
	assert.NotContains(t, output, "WARNING")
}

func TestStatus_JSON(t *testing.T) {
	s := testSession(t)
	seed(t, s, "2025-06-15", standup, lunch)
	seed(t, s, "2025-05-01", review)
	runNav(t, s, &NavCommand{Select: "2025-06-15"})

	cmd := &StatusCommand{globals: &GlobalFlags{JSON: true}, version: "1.0.0"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithSession(s))
	})

	var got statusJSON
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, 3, got.TotalEvents)
	assert.Equal(t, 2, got.DaysWithEvents)
	assert.Equal(t, map[string]int{"work": 2, "personal": 1, "others": 0}, got.ByCategory)
	assert.Equal(t, "2025-05-01", got.FirstDay)
	assert.Equal(t, "2025-06-15", got.LastDay)
	assert.Equal(t, "2025-06-15", got.Selected)
	assert.Greater(t, got.DatabaseSizeBytes, int64(0))

	keys := make([]string, len(got.Keys))
	for i, k := range got.Keys {
		keys[i] = k.Key
	}
	assert.Equal(t, []string{calendar.EventsKey, calendar.ViewKey}, keys)
}

func TestStatus_ReportsUnreadableEvents(t *testing.T) {
	s := testSession(t)
	require.NoError(t, s.kv.Put(context.Background(), calendar.EventsKey, []byte("not json")))
	s = reopen(s)

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "dev"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithSession(s))
	})
	assert.Contains(t, output, "WARNING: stored events were unreadable")
	assert.Contains(t, output, "Events:        0 on 0 day(s)")
}

func TestPrune_Before(t *testing.T) {
	s := testSession(t)
	seed(t, s, "2025-05-31", standup, review)
	seed(t, s, "2025-06-01", lunch)
	seed(t, s, "2025-06-15", standup)

	cmd := &PruneCommand{Before: "2025-06-01", globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithSession(s))
	})
	assert.Contains(t, output, "Pruned 2 event(s) before 2025-06-01")

	dates := reopen(s).store.Load().Dates()
	require.Len(t, dates, 2)
	assert.Equal(t, "2025-06-01", dates[0].String())
}

func TestPrune_OlderThanDryRun(t *testing.T) {
	s := testSession(t)
	seed(t, s, "2025-05-01", standup)
	seed(t, s, "2025-06-10", review)

	cmd := &PruneCommand{OlderThan: "2w", DryRun: true, globals: &GlobalFlags{JSON: true}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithSession(s))
	})

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, "2025-06-01", got["before"])
	assert.Equal(t, true, got["dry_run"])
	assert.Equal(t, float64(1), got["pruned"])
	assert.Len(t, s.store.Load().Dates(), 2, "dry run keeps everything")
}

func TestPrune_BadArgs(t *testing.T) {
	s := testSession(t)

	err := (&PruneCommand{OlderThan: "soon", globals: &GlobalFlags{}}).executeWithSession(s)
	assert.Error(t, err)

	err = (&PruneCommand{Before: "2025-06-01", OlderThan: "1d", globals: &GlobalFlags{}}).executeWithSession(s)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		days    int
		wantErr bool
	}{
		{"30d", 30, false},
		{"2w", 14, false},
		{"0d", 0, false},
		{"", 0, true},
		{"d", 0, true},
		{"5y", 0, true},
		{"-3d", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := parseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.days*24, int(d.Hours()))
		})
	}
}

func TestPurge_WithForce(t *testing.T) {
	s := testSession(t)
	seed(t, s, "2025-06-15", standup)
	runNav(t, s, &NavCommand{Show: "2030-01", Select: "2030-01-02"})

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithSession(s))
	})
	assert.Contains(t, output, "Purged all data")

	next := reopen(s)
	assert.Empty(t, next.store.Load().Dates())
	assert.Equal(t, "2025-06", next.nav.Displayed().String())
	_, ok := next.nav.Selected()
	assert.False(t, ok)
}

func TestPurge_Confirmation(t *testing.T) {
	s := testSession(t)
	seed(t, s, "2025-06-15", standup)

	wrong := &PurgeCommand{All: true, globals: &GlobalFlags{}, in: strings.NewReader("purge\n")}
	var err error
	output := captureOutput(t, func() {
		err = wrong.executeWithSession(s)
	})
	assert.Contains(t, output, `Type "PURGE" to confirm`)
	assert.ErrorContains(t, err, "did not match")
	assert.Len(t, s.store.EventsFor(june15), 1)

	empty := &PurgeCommand{All: true, globals: &GlobalFlags{}, in: strings.NewReader("")}
	captureOutput(t, func() {
		err = empty.executeWithSession(s)
	})
	assert.ErrorContains(t, err, "no input")

	right := &PurgeCommand{All: true, globals: &GlobalFlags{JSON: true}, in: strings.NewReader("PURGE\n")}
	output = captureOutput(t, func() {
		require.NoError(t, right.executeWithSession(s))
	})
	assert.Contains(t, output, `"purged": true`)
	assert.Empty(t, s.store.Load().Dates())
}
