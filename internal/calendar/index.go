package calendar

import "sort"

// Index maps year -> month -> day -> events in display order. It encodes to
// JSON with decimal string keys: {"2025":{"6":{"15":[...]}}}.
type Index map[int]map[int]map[int][]Event

// Day returns the events stored for d, or nil.
func (ix Index) Day(d DateKey) []Event {
	return ix[d.Year][d.Month][d.Day]
}

// setDay replaces the list for d. An empty list removes the day, and then the
// month and year if they become empty.
func (ix Index) setDay(d DateKey, events []Event) {
	if len(events) == 0 {
		months, ok := ix[d.Year]
		if !ok {
			return
		}
		days, ok := months[d.Month]
		if !ok {
			return
		}
		delete(days, d.Day)
		if len(days) == 0 {
			delete(months, d.Month)
		}
		if len(months) == 0 {
			delete(ix, d.Year)
		}
		return
	}

	if ix[d.Year] == nil {
		ix[d.Year] = make(map[int]map[int][]Event)
	}
	if ix[d.Year][d.Month] == nil {
		ix[d.Year][d.Month] = make(map[int][]Event)
	}
	ix[d.Year][d.Month][d.Day] = events
}

// Dates returns every day that has events, in calendar order.
func (ix Index) Dates() []DateKey {
	var dates []DateKey
	for y, months := range ix {
		for m, days := range months {
			for d, events := range days {
				if len(events) > 0 {
					dates = append(dates, DateKey{Year: y, Month: m, Day: d})
				}
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Clone returns a deep copy.
func (ix Index) Clone() Index {
	out := make(Index, len(ix))
	for y, months := range ix {
		mm := make(map[int]map[int][]Event, len(months))
		for m, days := range months {
			dd := make(map[int][]Event, len(days))
			for d, events := range days {
				dd[d] = cloneEvents(events)
			}
			mm[m] = dd
		}
		out[y] = mm
	}
	return out
}

// prune drops empty day lists and the maps left empty by them.
func (ix Index) prune() {
	for _, d := range ix.allKeys() {
		if len(ix.Day(d)) == 0 {
			ix.setDay(d, nil)
		}
	}
	for y, months := range ix {
		for m, days := range months {
			if len(days) == 0 {
				delete(months, m)
			}
		}
		if len(months) == 0 {
			delete(ix, y)
		}
	}
}

func (ix Index) allKeys() []DateKey {
	var keys []DateKey
	for y, months := range ix {
		for m, days := range months {
			for d := range days {
				keys = append(keys, DateKey{Year: y, Month: m, Day: d})
			}
		}
	}
	return keys
}

func cloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out
}
