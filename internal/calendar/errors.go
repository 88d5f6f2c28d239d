package calendar

import "fmt"

// ValidationError reports a missing or malformed field on a candidate event.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// OverlapError reports that a candidate intersects an event already stored on
// the same day.
type OverlapError struct {
	Date      DateKey
	Candidate Event
	Existing  Event
	Position  int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s-%s overlaps %q (%s-%s) on %s",
		e.Candidate.StartTime, e.Candidate.EndTime,
		e.Existing.Title, e.Existing.StartTime, e.Existing.EndTime, e.Date)
}

// NotFoundError reports a position or id that does not exist.
type NotFoundError struct {
	Date     DateKey
	Position int
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("event %s not found", e.ID)
	}
	return fmt.Sprintf("no event at position %d on %s", e.Position, e.Date)
}

// StorageReadError records that the persisted index could not be read or
// decoded. The store treats this as an empty index.
type StorageReadError struct {
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("read event index: %v", e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError reports a failed write-through. The mutation that caused
// it has been rolled back.
type StorageWriteError struct {
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write event index: %v", e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
