package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/calendar"
	"github.com/runnerr0/calplan/internal/config"
	"github.com/runnerr0/calplan/internal/storage"
)

// session bundles everything a command works against: configuration, the
// opened key-value store, the event store and the restored navigator.
type session struct {
	cfg    *config.Config
	dbPath string
	db     *sqlx.DB
	kv     *storage.SQLiteKV
	store  *calendar.EventStore
	nav    *calendar.Navigator
	clock  calendar.Clock
	loc    *time.Location

	logFile io.Closer
}

// openSession loads configuration, sets up logging, opens the database and
// restores the saved view.
func openSession(globals *GlobalFlags) (*session, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}

	logFile, err := setupLogging(cfg, globals.Verbose)
	if err != nil {
		return nil, err
	}

	dbPath := globals.DBPath
	if dbPath == "" {
		dbPath, err = cfg.DatabasePath()
		if err != nil {
			closeQuietly(logFile)
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := storage.Open(dbPath, cfg.Storage.JournalMode)
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("opening database: %w", err)
	}

	kv, err := storage.NewSQLiteKV(db)
	if err != nil {
		db.Close()
		closeQuietly(logFile)
		return nil, fmt.Errorf("init store: %w", err)
	}

	s := newSession(context.Background(), cfg, kv, calendar.SystemClock{})
	s.dbPath = dbPath
	s.db = db
	s.logFile = logFile
	log.Debugf("Opened %s", dbPath)
	return s, nil
}

// newSession wires the calendar over an already-open kv store (used by tests).
func newSession(ctx context.Context, cfg *config.Config, kv *storage.SQLiteKV, clock calendar.Clock) *session {
	store := calendar.NewEventStore(ctx, kv)
	var writeErr *calendar.StorageWriteError
	switch err := store.LastReadError(); {
	case errors.As(err, &writeErr):
		log.Warnf("Completed legacy events could not be saved: %v", err)
	case err != nil:
		log.Warnf("Stored events could not be read, starting empty: %v", err)
	}

	nav := calendar.NewNavigator(store, clock, calendar.ParseWeekStart(cfg.Calendar.WeekStart))
	if err := nav.Restore(ctx, kv); err != nil {
		log.Warnf("Saved view could not be read, showing the current month: %v", err)
	}

	return &session{
		cfg:   cfg,
		kv:    kv,
		store: store,
		nav:   nav,
		clock: clock,
		loc:   time.Local,
	}
}

func (s *session) Close() {
	if s.kv != nil {
		s.kv.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	closeQuietly(s.logFile)
}

func closeQuietly(c io.Closer) {
	if c != nil {
		c.Close()
	}
}

// loadConfig reads --config when given, otherwise the default config file,
// creating it on first run.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals.Config != "" {
		cfg, err := config.Load(globals.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// setupLogging applies logging.level (debug with --verbose) and directs
// output to logging.file when set. The returned closer may be nil.
func setupLogging(cfg *config.Config, verbose bool) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	path, err := cfg.LogFile()
	if err != nil || path == "" {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// resolveDate parses a --date value. Empty means the selected day, then
// today; "today" is accepted literally.
func (s *session) resolveDate(value string) (calendar.DateKey, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		if d, ok := s.nav.Selected(); ok {
			return d, nil
		}
		return calendar.DateKeyOf(s.clock.Now()), nil
	case "today":
		return calendar.DateKeyOf(s.clock.Now()), nil
	}
	return calendar.ParseDateKey(value)
}

// resolveMonth parses a --month value. Empty means the displayed month.
func (s *session) resolveMonth(value string) (calendar.YearMonth, error) {
	if strings.TrimSpace(value) == "" {
		return s.nav.Displayed(), nil
	}
	return calendar.ParseYearMonth(value)
}

// resolveTarget finds the day and 0-based position addressed by --date,
// --id and --pos. An --id without --date is looked up across all days.
func (s *session) resolveTarget(t EventTarget) (calendar.DateKey, int, error) {
	if t.ID != "" {
		if t.Date == "" {
			found, err := s.store.Find(t.ID)
			if err != nil {
				return calendar.DateKey{}, 0, err
			}
			return found.Date, found.Position, nil
		}
		date, err := s.resolveDate(t.Date)
		if err != nil {
			return calendar.DateKey{}, 0, err
		}
		pos, err := s.store.IndexOf(date, t.ID)
		return date, pos, err
	}

	if t.Pos < 1 {
		return calendar.DateKey{}, 0, fmt.Errorf("--id or --pos (1-based) is required")
	}
	date, err := s.resolveDate(t.Date)
	if err != nil {
		return calendar.DateKey{}, 0, err
	}
	return date, t.Pos - 1, nil
}

// saveView persists the navigator so the next run resumes where this left off.
func (s *session) saveView() error {
	if err := s.nav.Save(context.Background(), s.kv); err != nil {
		return fmt.Errorf("saving view: %w", err)
	}
	return nil
}

// eventJSON is an event with its 1-based position, as shown to users.
type eventJSON struct {
	Position int `json:"position"`
	calendar.Event
}

type dayJSON struct {
	Date   string      `json:"date"`
	Events []eventJSON `json:"events"`
}

func toDayJSON(date calendar.DateKey, events []calendar.Event) dayJSON {
	out := dayJSON{Date: date.String(), Events: make([]eventJSON, len(events))}
	for i, e := range events {
		out.Events[i] = eventJSON{Position: i + 1, Event: e}
	}
	return out
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDay(date calendar.DateKey, events []calendar.Event, loc *time.Location) {
	fmt.Printf("%s (%s)\n", date, date.Time(loc).Weekday())
	if len(events) == 0 {
		fmt.Println("  No events")
		return
	}
	for i, e := range events {
		printEventLine(i+1, e)
	}
}

func printEventLine(pos int, e calendar.Event) {
	fmt.Printf("  %d. %s-%s  %s [%s]\n", pos, e.StartTime, e.EndTime, e.Title, e.Category)
	if e.Description != "" && e.Description != e.Title {
		fmt.Printf("     %s\n", e.Description)
	}
}

// parseDuration parses a day or week count such as "30d" or "2w".
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d or w suffix)", s)
	}
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
