package export

import (
	"encoding/csv"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/calendar"
)

var csvHeader = []string{"Title", "Start Time", "End Time", "Description", "Category"}

// WriteCSV writes a header row and one row per event. Fields holding commas,
// quotes or newlines are quoted. With withDate a leading Date column is added.
func WriteCSV(w io.Writer, events []calendar.DatedEvent, withDate bool) error {
	writer := csv.NewWriter(w)

	header := csvHeader
	if withDate {
		header = append([]string{"Date"}, csvHeader...)
	}
	if err := writer.Write(header); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return err
	}

	for _, e := range events {
		row := []string{e.Event.Title, e.Event.StartTime, e.Event.EndTime, e.Event.Description, string(e.Event.Category)}
		if withDate {
			row = append([]string{e.Date.String()}, row...)
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return err
	}
	return nil
}
