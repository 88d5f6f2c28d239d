package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Add    *AddCommand
	Edit   *EditCommand
	Delete *DeleteCommand
	List   *ListCommand
	Search *SearchCommand
	Show   *ShowCommand
	Month  *MonthCommand
	Nav    *NavCommand
	Export *ExportCommand
	Import *ImportCommand
	Status *StatusCommand
	Prune  *PruneCommand
	Purge  *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "calplan"
	parser.LongDescription = "Personal day planner: timed events per day, with overlap checks, a month grid and exports."

	cmds := &commands{
		Add:    &AddCommand{globals: &globals, version: version},
		Edit:   &EditCommand{globals: &globals, version: version},
		Delete: &DeleteCommand{globals: &globals, version: version},
		List:   &ListCommand{globals: &globals, version: version},
		Search: &SearchCommand{globals: &globals, version: version},
		Show:   &ShowCommand{globals: &globals, version: version},
		Month:  &MonthCommand{globals: &globals, version: version},
		Nav:    &NavCommand{globals: &globals, version: version},
		Export: &ExportCommand{globals: &globals, version: version},
		Import: &ImportCommand{globals: &globals, version: version},
		Status: &StatusCommand{globals: &globals, version: version},
		Prune:  &PruneCommand{globals: &globals, version: version},
		Purge:  &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("add", "Add an event", "Add a timed event to a day. Rejected if it overlaps an existing event.", cmds.Add)
	parser.AddCommand("edit", "Edit an event", "Replace fields of an event addressed by --id or --pos.", cmds.Edit)
	parser.AddCommand("delete", "Delete an event", "Delete an event addressed by --id or --pos.", cmds.Delete)
	parser.AddCommand("list", "List events", "List the events of a day, or of a whole month with --month.", cmds.List)
	parser.AddCommand("search", "Search a day's events", "Case-insensitive keyword search over titles and descriptions.", cmds.Search)
	parser.AddCommand("show", "Print one event", "Print every field of a single event.", cmds.Show)
	parser.AddCommand("month", "Render the month grid", "Render the displayed month as a calendar grid with event markers.", cmds.Month)
	parser.AddCommand("nav", "Change the displayed month or selected day", "Move between months and select a day. The view is saved between runs.", cmds.Nav)
	parser.AddCommand("export", "Export events", "Export a day or month of events as JSON, CSV or iCalendar.", cmds.Export)
	parser.AddCommand("import", "Import an iCalendar file", "Add the timed single-day events of an .ics file.", cmds.Import)
	parser.AddCommand("status", "Show database and calendar statistics", "Show database size, event totals and the current view.", cmds.Status)
	parser.AddCommand("prune", "Remove old events", "Remove every event on days before a cutoff date.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL calplan data", "Delete ALL events and view state. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the calplan CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("calplan %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
