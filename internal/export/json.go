package export

import (
	"encoding/json"
	"io"

	"github.com/runnerr0/calplan/internal/calendar"
)

type datedEvent struct {
	Date string `json:"date"`
	calendar.Event
}

// WriteJSON writes events as a two-space indented JSON array. With withDate
// each element also carries its "date".
func WriteJSON(w io.Writer, events []calendar.DatedEvent, withDate bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if !withDate {
		out := make([]calendar.Event, len(events))
		for i, e := range events {
			out[i] = e.Event
		}
		return enc.Encode(out)
	}

	out := make([]datedEvent, len(events))
	for i, e := range events {
		out[i] = datedEvent{Date: e.Date.String(), Event: e.Event}
	}
	return enc.Encode(out)
}
