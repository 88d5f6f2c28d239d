package calendar

import (
	"fmt"
	"time"
)

// DateKey addresses one calendar day in the event index.
type DateKey struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// DateKeyOf derives the key for the local calendar date of t.
func DateKeyOf(t time.Time) DateKey {
	return DateKey{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDateKey parses "YYYY-MM-DD". Impossible dates such as 2025-02-30 are
// rejected.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DateKey{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return DateKeyOf(t), nil
}

func (d DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether d names a real calendar day.
func (d DateKey) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysIn(d.Year, time.Month(d.Month))
}

// Time returns midnight of d in loc.
func (d DateKey) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// At returns the instant of the "HH:MM" wall-clock time on d in loc.
func (d DateKey) At(clock string, loc *time.Location) (time.Time, error) {
	if !IsClock(clock) {
		return time.Time{}, &ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not HH:MM", clock)}
	}
	hh := int(clock[0]-'0')*10 + int(clock[1]-'0')
	mm := int(clock[3]-'0')*10 + int(clock[4]-'0')
	return time.Date(d.Year, time.Month(d.Month), d.Day, hh, mm, 0, 0, loc), nil
}

// Before reports whether d is an earlier day than o.
func (d DateKey) Before(o DateKey) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// YearMonth returns the month containing d.
func (d DateKey) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: time.Month(d.Month)}
}

// YearMonth is a displayed calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, &ValidationError{Field: "month", Reason: fmt.Sprintf("%q is not a YYYY-MM month", s)}
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// AddMonths moves n months forward (or back for negative n), rolling the
// year over at both ends.
func (ym YearMonth) AddMonths(n int) YearMonth {
	idx := ym.Year*12 + int(ym.Month) - 1 + n
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	return YearMonth{Year: year, Month: time.Month(month + 1)}
}

// Days returns the number of days in the month.
func (ym YearMonth) Days() int {
	return DaysIn(ym.Year, ym.Month)
}

// First returns the first day of the month.
func (ym YearMonth) First() DateKey {
	return DateKey{Year: ym.Year, Month: int(ym.Month), Day: 1}
}

// DaysIn returns the number of days in month m of year.
func DaysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
