package calendar

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// EventsKey is the storage key holding the serialized Index.
const EventsKey = "events"

// KV is the persistence the store writes through to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// EventStore owns the event index. It is the only reader and writer of
// EventsKey; every successful mutation writes the whole index back before
// returning. It is not safe for concurrent use.
type EventStore struct {
	kv      KV
	index   Index
	readErr error
	newID   func() string
}

// DatedEvent is an event together with its address in the index.
type DatedEvent struct {
	Date     DateKey
	Position int
	Event    Event
}

// Stats summarizes the stored events.
type Stats struct {
	TotalEvents int
	Days        int
	ByCategory  map[Category]int
	First       DateKey
	Last        DateKey
}

// NewEventStore creates a store over kv and loads the persisted index.
// Unreadable or corrupt data yields an empty index; see LastReadError.
func NewEventStore(ctx context.Context, kv KV) *EventStore {
	s := &EventStore{kv: kv, newID: uuid.NewString}
	s.Reload(ctx)
	return s
}

// Reload discards the in-memory index and reads it again from storage.
// Records missing an id or category are completed and written back once, so
// ids shown in one session still resolve in the next.
func (s *EventStore) Reload(ctx context.Context) {
	var completed bool
	s.index, completed, s.readErr = s.read(ctx)
	if completed {
		if err := s.persist(ctx); err != nil {
			s.readErr = &StorageWriteError{Err: err}
		}
	}
}

func (s *EventStore) read(ctx context.Context) (ix Index, completed bool, err error) {
	raw, ok, err := s.kv.Get(ctx, EventsKey)
	if err != nil {
		return Index{}, false, &StorageReadError{Err: err}
	}
	if !ok || len(raw) == 0 {
		return Index{}, false, nil
	}

	if err := json.Unmarshal(raw, &ix); err != nil {
		return Index{}, false, &StorageReadError{Err: err}
	}
	if ix == nil {
		ix = Index{}
	}
	ix.prune()

	// Records written before ids existed get one; a missing category falls
	// back to work.
	for _, months := range ix {
		for _, days := range months {
			for _, events := range days {
				for i := range events {
					if events[i].ID == "" {
						events[i].ID = s.newID()
						completed = true
					}
					if events[i].Category == "" {
						events[i].Category = CategoryWork
						completed = true
					}
				}
			}
		}
	}
	return ix, completed, nil
}

// LastReadError returns the *StorageReadError from the most recent load, a
// *StorageWriteError if completed records could not be written back, or nil.
func (s *EventStore) LastReadError() error {
	return s.readErr
}

// Load returns a copy of the current index.
func (s *EventStore) Load() Index {
	return s.index.Clone()
}

// EventsFor returns the events on date in list order. The slice is a copy.
func (s *EventStore) EventsFor(date DateKey) []Event {
	events := cloneEvents(s.index.Day(date))
	if events == nil {
		return []Event{}
	}
	return events
}

// HasEvents reports whether any event is stored on date.
func (s *EventStore) HasEvents(date DateKey) bool {
	return len(s.index.Day(date)) > 0
}

// Add validates candidate, rejects it if it overlaps an event on date, and
// otherwise appends it with a fresh id. It returns the updated day list.
func (s *EventStore) Add(ctx context.Context, date DateKey, candidate Event) ([]Event, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	day := s.index.Day(date)
	if err := findOverlap(date, day, candidate, -1); err != nil {
		return nil, err
	}

	candidate.ID = s.newID()
	next := make([]Event, 0, len(day)+1)
	next = append(next, day...)
	next = append(next, candidate)

	if err := s.commitDay(ctx, date, next); err != nil {
		return nil, err
	}
	return cloneEvents(next), nil
}

// Update replaces the event at position. The replaced event is left out of
// the overlap check, and its id carries over to the new value.
func (s *EventStore) Update(ctx context.Context, date DateKey, position int, candidate Event) ([]Event, error) {
	day := s.index.Day(date)
	if position < 0 || position >= len(day) {
		return nil, &NotFoundError{Date: date, Position: position}
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if err := findOverlap(date, day, candidate, position); err != nil {
		return nil, err
	}

	candidate.ID = day[position].ID
	next := cloneEvents(day)
	next[position] = candidate

	if err := s.commitDay(ctx, date, next); err != nil {
		return nil, err
	}
	return cloneEvents(next), nil
}

// Remove deletes the event at position. Later positions shift down by one.
func (s *EventStore) Remove(ctx context.Context, date DateKey, position int) ([]Event, error) {
	day := s.index.Day(date)
	if position < 0 || position >= len(day) {
		return nil, &NotFoundError{Date: date, Position: position}
	}

	next := make([]Event, 0, len(day)-1)
	next = append(next, day[:position]...)
	next = append(next, day[position+1:]...)

	if err := s.commitDay(ctx, date, next); err != nil {
		return nil, err
	}
	return s.EventsFor(date), nil
}

// Search returns the events on date whose title or description contains
// keyword, ignoring case. An empty keyword matches everything.
func (s *EventStore) Search(date DateKey, keyword string) []Event {
	events := s.EventsFor(date)
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return events
	}

	matched := make([]Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Description), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

// IndexOf returns the current position of the event with id on date. Use it
// to turn an entry from a filtered view back into a position for Update or
// Remove.
func (s *EventStore) IndexOf(date DateKey, id string) (int, error) {
	for i, e := range s.index.Day(date) {
		if e.ID == id {
			return i, nil
		}
	}
	return -1, &NotFoundError{Date: date, Position: -1, ID: id}
}

// Find locates the event with id anywhere in the index.
func (s *EventStore) Find(id string) (DatedEvent, error) {
	for _, d := range s.index.Dates() {
		for i, e := range s.index.Day(d) {
			if e.ID == id {
				return DatedEvent{Date: d, Position: i, Event: e}, nil
			}
		}
	}
	return DatedEvent{}, &NotFoundError{Position: -1, ID: id}
}

// EventsInMonth returns every event in ym ordered by day, then list order.
func (s *EventStore) EventsInMonth(ym YearMonth) []DatedEvent {
	days := s.index[ym.Year][int(ym.Month)]
	keys := make([]int, 0, len(days))
	for d := range days {
		keys = append(keys, d)
	}
	sort.Ints(keys)

	out := []DatedEvent{}
	for _, d := range keys {
		date := DateKey{Year: ym.Year, Month: int(ym.Month), Day: d}
		for i, e := range days[d] {
			out = append(out, DatedEvent{Date: date, Position: i, Event: e})
		}
	}
	return out
}

// Stats counts the stored events.
func (s *EventStore) Stats() Stats {
	st := Stats{ByCategory: make(map[Category]int)}
	dates := s.index.Dates()
	for _, d := range dates {
		for _, e := range s.index.Day(d) {
			st.TotalEvents++
			st.ByCategory[e.Category]++
		}
	}
	st.Days = len(dates)
	if len(dates) > 0 {
		st.First = dates[0]
		st.Last = dates[len(dates)-1]
	}
	return st
}

// RemoveBefore deletes every event on days strictly before date and returns
// how many were removed.
func (s *EventStore) RemoveBefore(ctx context.Context, date DateKey) (int, error) {
	var doomed []DateKey
	removed := 0
	for _, d := range s.index.Dates() {
		if d.Before(date) {
			doomed = append(doomed, d)
			removed += len(s.index.Day(d))
		}
	}
	if removed == 0 {
		return 0, nil
	}

	snapshot := s.index.Clone()
	for _, d := range doomed {
		s.index.setDay(d, nil)
	}
	if err := s.persist(ctx); err != nil {
		s.index = snapshot
		return 0, &StorageWriteError{Err: err}
	}
	return removed, nil
}

// Clear deletes every event.
func (s *EventStore) Clear(ctx context.Context) error {
	snapshot := s.index
	s.index = Index{}
	if err := s.persist(ctx); err != nil {
		s.index = snapshot
		return &StorageWriteError{Err: err}
	}
	return nil
}

// commitDay installs next as the list for date and writes the index through.
// On a failed write the previous list is restored.
func (s *EventStore) commitDay(ctx context.Context, date DateKey, next []Event) error {
	prev := s.index.Day(date)
	s.index.setDay(date, next)
	if err := s.persist(ctx); err != nil {
		s.index.setDay(date, prev)
		return &StorageWriteError{Err: err}
	}
	return nil
}

func (s *EventStore) persist(ctx context.Context) error {
	data, err := json.Marshal(s.index)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, EventsKey, data)
}

// findOverlap returns an *OverlapError for the first event in day that
// intersects candidate, skipping position skip.
func findOverlap(date DateKey, day []Event, candidate Event, skip int) error {
	for i, existing := range day {
		if i == skip {
			continue
		}
		if candidate.Overlaps(existing) {
			return &OverlapError{Date: date, Candidate: candidate, Existing: existing, Position: i}
		}
	}
	return nil
}

func checkDate(date DateKey) error {
	if !date.Valid() {
		return &ValidationError{Field: "date", Reason: date.String() + " is not a calendar day"}
	}
	return nil
}
