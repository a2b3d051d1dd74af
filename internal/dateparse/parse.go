// Package dateparse recognizes a single calendar date in free-form Russian or
// English text.
//
// Parsing is a pure function of the input and a caller-supplied reference
// date: the package never reads the clock and keeps no state, so it is safe
// for concurrent use. Text is normalized first, then matched by month name
// ("27 января 2026", "Jan 27") or, when no month word is present, as numerals
// ("27.01.2026", "20260127", "13/5"). Every candidate reading goes through the
// calendar validator and the first valid one in priority order wins.
package dateparse

import "errors"

// ErrUnrecognized is returned when the text holds no safely recognizable date.
// Malformed and merely ambiguous input are deliberately indistinguishable.
var ErrUnrecognized = errors.New("date not recognized")

// Match is a recognized date together with the rule that produced it.
type Match struct {
	Date CalendarDate
	Rule string
}

// Parse returns the date written in raw. ref supplies the year when the text
// omits it.
func Parse(raw string, ref Reference) (CalendarDate, error) {
	m, err := ParseMatch(raw, ref)
	if err != nil {
		return CalendarDate{}, err
	}
	return m.Date, nil
}

// ParseMatch is Parse that also reports which rule accepted the date.
func ParseMatch(raw string, ref Reference) (Match, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return Match{}, ErrUnrecognized
	}
	if res := matchByMonthName(normalized, ref.Year); res.found {
		if !res.ok {
			return Match{}, ErrUnrecognized
		}
		return res.match, nil
	}
	if m, ok := matchNumeric(normalized, ref.Year); ok {
		return m, nil
	}
	return Match{}, ErrUnrecognized
}
