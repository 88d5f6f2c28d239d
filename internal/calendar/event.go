package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category classifies an event.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryOthers   Category = "others"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryOthers}

// ParseCategory accepts a category name in any letter case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Reason: fmt.Sprintf("%q is not one of work, personal, others", s)}
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryOthers:
		return true
	}
	return false
}

// Event is a time-boxed entry on a single day. StartTime and EndTime are
// zero-padded 24-hour "HH:MM" wall-clock strings, so they order correctly as
// plain strings.
type Event struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Category    Category `json:"category"`
}

// UnmarshalJSON decodes the canonical shape and also accepts records written
// with "start"/"end" instead of "startTime"/"endTime".
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	var aux struct {
		plain
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*e = Event(aux.plain)
	if e.StartTime == "" {
		e.StartTime = aux.Start
	}
	if e.EndTime == "" {
		e.EndTime = aux.End
	}
	return nil
}

// Validate checks field presence, time format, ordering and category.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if !IsClock(e.StartTime) {
		return &ValidationError{Field: "startTime", Reason: fmt.Sprintf("%q is not HH:MM", e.StartTime)}
	}
	if !IsClock(e.EndTime) {
		return &ValidationError{Field: "endTime", Reason: fmt.Sprintf("%q is not HH:MM", e.EndTime)}
	}
	if e.StartTime >= e.EndTime {
		return &ValidationError{Field: "endTime", Reason: "must be later than start time"}
	}
	if !e.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("%q is not one of work, personal, others", e.Category)}
	}
	return nil
}

// Overlaps reports whether the half-open intervals [e.StartTime, e.EndTime)
// and [o.StartTime, o.EndTime) intersect. Touching endpoints do not overlap.
func (e Event) Overlaps(o Event) bool {
	return e.StartTime < o.EndTime && o.StartTime < e.EndTime
}

// IsClock reports whether s is a zero-padded 24-hour "HH:MM" time.
func IsClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	return hh < 24 && mm < 60
}

// NormalizeClock turns user input such as "9:05" or "09:05" into the
// zero-padded form the store compares on.
func NormalizeClock(s string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", &ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not a 24-hour HH:MM time", s)}
	}
	return t.Format("15:04"), nil
}

// ClockOf formats the wall-clock time of t as "HH:MM".
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}
