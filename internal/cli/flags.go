package cli

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	DBPath  string `long:"db-path" description:"Override the SQLite database path"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// EventFields are the editable fields shared by add and edit.
type EventFields struct {
	Title       string `long:"title" description:"Event title"`
	Description string `long:"desc" description:"Event description"`
	Start       string `long:"start" description:"Start time, 24-hour HH:MM"`
	End         string `long:"end" description:"End time, 24-hour HH:MM"`
	Category    string `long:"category" description:"work | personal | others"`
}

// EventTarget addresses one stored event.
type EventTarget struct {
	Date string `long:"date" description:"Day (YYYY-MM-DD); defaults to the selected day, then today"`
	ID   string `long:"id" description:"Event ID"`
	Pos  int    `long:"pos" description:"1-based position in the day's list"`
}

// AddCommand adds an event to a day.
type AddCommand struct {
	Date string `long:"date" description:"Day (YYYY-MM-DD); defaults to the selected day, then today"`
	EventFields

	globals *GlobalFlags
	version string
}

// EditCommand replaces fields of an existing event.
type EditCommand struct {
	EventTarget
	EventFields

	globals *GlobalFlags
	version string
}

// DeleteCommand removes one event.
type DeleteCommand struct {
	EventTarget

	globals *GlobalFlags
	version string
}

// ShowCommand prints one event.
type ShowCommand struct {
	EventTarget

	globals *GlobalFlags
	version string
}

// ListCommand lists the events of a day or a month.
type ListCommand struct {
	Date  string `long:"date" description:"Day (YYYY-MM-DD); defaults to the selected day, then today"`
	Month string `long:"month" description:"List a whole month (YYYY-MM)"`

	globals *GlobalFlags
	version string
}

// SearchCommand filters a day's events by keyword.
type SearchCommand struct {
	Date  string `long:"date" description:"Day (YYYY-MM-DD); defaults to the selected day, then today"`
	Month string `long:"month" description:"Search every day of a month (YYYY-MM)"`
	Args  struct {
		Keyword []string `positional-arg-name:"keyword"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// MonthCommand renders the month grid.
type MonthCommand struct {
	Month string `long:"month" description:"Month to render (YYYY-MM); defaults to the displayed month"`

	globals *GlobalFlags
	version string
}

// NavCommand changes and saves the displayed month and selected day.
type NavCommand struct {
	Prev   bool   `long:"prev" description:"Show the previous month"`
	Next   bool   `long:"next" description:"Show the next month"`
	Today  bool   `long:"today" description:"Show the current month"`
	Show   string `long:"show" description:"Show a month (YYYY-MM)"`
	Select string `long:"select" description:"Select a day (YYYY-MM-DD)"`
	Clear  bool   `long:"clear" description:"Clear the selected day"`

	globals *GlobalFlags
	version string
}

// ExportCommand writes a day or month of events to a file.
type ExportCommand struct {
	Format string `long:"format" description:"json | csv | ics" default:"json"`
	Date   string `long:"date" description:"Day to export (YYYY-MM-DD)"`
	Month  string `long:"month" description:"Month to export (YYYY-MM)"`
	Out    string `long:"out" description:"Output file; - for stdout"`

	globals *GlobalFlags
	version string
}

// ImportCommand adds the timed events of an iCalendar file.
type ImportCommand struct {
	DryRun bool `long:"dry-run" description:"Report what would be imported without adding"`
	Args   struct {
		File string `positional-arg-name:"file" required:"yes"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// StatusCommand shows database and calendar statistics.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand removes events on days before a cutoff.
type PruneCommand struct {
	Before    string `long:"before" description:"Remove events on days before this date (YYYY-MM-DD)"`
	OlderThan string `long:"older-than" description:"Remove events older than a duration (e.g., 30d, 8w)"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
	version string
}

// PurgeCommand deletes all events and saved view state.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	in      io.Reader // confirmation input; nil means stdin
}
