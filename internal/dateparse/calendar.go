package dateparse

import (
	"fmt"
	"time"
)

const (
	minYear = 1900
	maxYear = 2100
)

// CalendarDate is a validated Gregorian date. The zero value is not a valid
// date; values are obtained from NewCalendarDate or Parse.
type CalendarDate struct {
	day   int
	month int
	year  int
}

// NewCalendarDate validates the triple and returns the date.
func NewCalendarDate(day, month, year int) (CalendarDate, bool) {
	if !IsValidDate(day, month, year) {
		return CalendarDate{}, false
	}
	return CalendarDate{day: day, month: month, year: year}, true
}

// IsValidDate reports whether day.month.year exists in the proleptic Gregorian
// calendar within the supported year range.
func IsValidDate(day, month, year int) bool {
	if year < minYear || year > maxYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

func (d CalendarDate) Day() int   { return d.day }
func (d CalendarDate) Month() int { return d.month }
func (d CalendarDate) Year() int  { return d.year }

// IsZero reports whether d was never constructed.
func (d CalendarDate) IsZero() bool {
	return d.year == 0
}

// Time returns midnight of d in loc (UTC when loc is nil).
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, loc)
}

// AddDays shifts d by n calendar days. The result is rejected when it leaves
// the supported year range.
func (d CalendarDate) AddDays(n int) (CalendarDate, bool) {
	t := d.Time(time.UTC).AddDate(0, 0, n)
	return NewCalendarDate(t.Day(), int(t.Month()), t.Year())
}

// String returns the ISO form YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Reference is the caller's "today" in a fixed civil timezone.
type Reference struct {
	Day   int
	Month int
	Year  int
}

// ReferenceFrom takes the civil date of t in t's own location.
func ReferenceFrom(t time.Time) Reference {
	return Reference{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Valid reports whether r denotes a real date the engine can work with.
func (r Reference) Valid() bool {
	return IsValidDate(r.Day, r.Month, r.Year)
}

// Date converts r to a CalendarDate.
func (r Reference) Date() (CalendarDate, bool) {
	return NewCalendarDate(r.Day, r.Month, r.Year)
}
