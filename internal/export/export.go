// Package export renders events as JSON, CSV and iCalendar and reads
// iCalendar files back into candidate events.
package export

import (
	"fmt"
	"strings"

	"github.com/runnerr0/calplan/internal/calendar"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatICS  Format = "ics"
)

// ParseFormat accepts json, csv or ics in any letter case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatICS:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use json, csv or ics)", s)
	}
}

// DayFileName is the default file name for one day's export.
func DayFileName(d calendar.DateKey, f Format) string {
	return fmt.Sprintf("events_%s.%s", d, f)
}

// MonthFileName is the default file name for a month's export.
func MonthFileName(ym calendar.YearMonth, f Format) string {
	return fmt.Sprintf("events_%d_%d.%s", int(ym.Month), ym.Year, f)
}
