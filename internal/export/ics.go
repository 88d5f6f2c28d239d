package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/runnerr0/calplan/internal/calendar"
)

const productID = "-//runnerr0//calplan//EN"

// WriteICS writes events as VEVENTs. Wall-clock times are interpreted in loc;
// now stamps DTSTAMP.
func WriteICS(w io.Writer, events []calendar.DatedEvent, loc *time.Location, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		start, err := e.Date.At(e.Event.StartTime, loc)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.Event.ID, err)
		}
		end, err := e.Date.At(e.Event.EndTime, loc)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.Event.ID, err)
		}

		uid := e.Event.ID
		if uid == "" {
			uid = fmt.Sprintf("%s-%d@calplan", e.Date, e.Position)
		}

		ve := cal.AddEvent(uid)
		ve.SetDtStampTime(now)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(e.Event.Title)
		ve.SetDescription(e.Event.Description)
		ve.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(e.Event.Category)))
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// Candidate is an event read from an iCalendar file, not yet validated
// against the store.
type Candidate struct {
	UID   string
	Date  calendar.DateKey
	Event calendar.Event
}

// Skipped is a VEVENT that could not become a candidate.
type Skipped struct {
	UID     string `json:"uid"`
	Summary string `json:"summary"`
	Reason  string `json:"reason"`
}

// ReadICS parses an iCalendar stream. Each VEVENT becomes a candidate on its
// start date in loc. Events without a start or end, all-day events and
// events ending on a later day are skipped. Empty descriptions fall back to
// the summary, and unknown categories become "others".
func ReadICS(r io.Reader, loc *time.Location) ([]Candidate, []Skipped, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parse calendar: %w", err)
	}

	var candidates []Candidate
	var skipped []Skipped
	for _, ve := range cal.Events() {
		c, err := candidateOf(ve, loc)
		if err != nil {
			skipped = append(skipped, Skipped{UID: c.UID, Summary: c.Event.Title, Reason: err.Error()})
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, skipped, nil
}

func candidateOf(ve *ical.VEvent, loc *time.Location) (Candidate, error) {
	var c Candidate
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		c.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		c.Event.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		c.Event.Description = p.Value
	}
	if strings.TrimSpace(c.Event.Description) == "" {
		c.Event.Description = c.Event.Title
	}

	c.Event.Category = calendar.CategoryOthers
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		for _, name := range strings.Split(p.Value, ",") {
			if cat, err := calendar.ParseCategory(name); err == nil {
				c.Event.Category = cat
				break
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p == nil || !strings.Contains(p.Value, "T") {
		return c, errors.New("all-day or missing start")
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return c, fmt.Errorf("start: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return c, fmt.Errorf("end: %w", err)
	}
	start, end = start.In(loc), end.In(loc)

	c.Date = calendar.DateKeyOf(start)
	if calendar.DateKeyOf(end) != c.Date {
		return c, errors.New("ends on a different day")
	}
	c.Event.StartTime = calendar.ClockOf(start)
	c.Event.EndTime = calendar.ClockOf(end)
	return c, nil
}
