package dateparse

import "strconv"

// dateCandidate is an unvalidated reading proposed by a matcher. year keeps
// the raw fragment so its digit count drives coercion.
type dateCandidate struct {
	day   int
	month int
	year  string
}

func (c dateCandidate) validate() (CalendarDate, bool) {
	return NewCalendarDate(c.day, c.month, CoerceYear(c.year))
}

// compactLayout splits a run of digits at fixed byte offsets.
type compactLayout struct {
	rule   string
	length int
	year   [2]int
	month  [2]int
	day    [2]int
}

// compactLayouts are tried in order; the first valid split wins.
var compactLayouts = []compactLayout{
	{rule: "compact_yyyymmdd", length: 8, year: [2]int{0, 4}, month: [2]int{4, 6}, day: [2]int{6, 8}},
	{rule: "compact_ddmmyyyy", length: 8, day: [2]int{0, 2}, month: [2]int{2, 4}, year: [2]int{4, 8}},
	{rule: "compact_ddmmyy", length: 6, day: [2]int{0, 2}, month: [2]int{2, 4}, year: [2]int{4, 6}},
	{rule: "compact_yymmdd", length: 6, year: [2]int{0, 2}, month: [2]int{2, 4}, day: [2]int{4, 6}},
}

func (l compactLayout) candidate(digits string) (dateCandidate, bool) {
	if len(digits) != l.length {
		return dateCandidate{}, false
	}
	day, _ := strconv.Atoi(digits[l.day[0]:l.day[1]])
	month, _ := strconv.Atoi(digits[l.month[0]:l.month[1]])
	return dateCandidate{day: day, month: month, year: digits[l.year[0]:l.year[1]]}, true
}

// windowReading assigns the three numerals of a window (positions 0, 1, 2) to
// year, day and month. Full readings need a 4-digit year numeral; short ones
// need at most 2 digits and are only used when the input has no 4-digit
// numeral at all.
type windowReading struct {
	rule      string
	year      int
	day       int
	month     int
	shortYear bool
}

// windowReadings is the priority order for a window (a, b, c).
var windowReadings = []windowReading{
	{rule: "window_ymd", year: 0, month: 1, day: 2},
	{rule: "window_ydm", year: 0, day: 1, month: 2},
	{rule: "window_dmy", year: 2, day: 0, month: 1},
	{rule: "window_mdy", year: 2, month: 0, day: 1},
	{rule: "window_dym", year: 1, day: 0, month: 2},
	{rule: "window_myd", year: 1, month: 0, day: 2},
	{rule: "window_dmyy", year: 2, day: 0, month: 1, shortYear: true},
	{rule: "window_mdyy", year: 2, month: 0, day: 1, shortYear: true},
	{rule: "window_yymd", year: 0, month: 1, day: 2, shortYear: true},
	{rule: "window_yydm", year: 0, day: 1, month: 2, shortYear: true},
}

func (r windowReading) candidate(w [3]token, allowShortYear bool) (dateCandidate, bool) {
	year := w[r.year]
	if r.shortYear {
		if !allowShortYear || year.digits() > 2 {
			return dateCandidate{}, false
		}
	} else if year.digits() != 4 {
		return dateCandidate{}, false
	}
	return dateCandidate{day: w[r.day].value, month: w[r.month].value, year: year.text}, true
}

// pairReading is the last resort when no window holds a valid date.
type pairReading struct {
	rule  string
	day   int
	month int
}

var pairReadings = []pairReading{
	{rule: "pair_dm", day: 0, month: 1},
	{rule: "pair_md", month: 0, day: 1},
}

func matchNumeric(normalized string, refYear int) (Match, bool) {
	if digits := onlyDigits(normalized); len(digits) == 6 || len(digits) == 8 {
		for _, layout := range compactLayouts {
			c, ok := layout.candidate(digits)
			if !ok {
				continue
			}
			if date, ok := c.validate(); ok {
				return Match{Date: date, Rule: layout.rule}, true
			}
		}
	}

	numerals := numeralTokens(normalized)
	allowShortYear := true
	for _, n := range numerals {
		if n.digits() == 4 {
			allowShortYear = false
			break
		}
	}
	for i := 0; i+3 <= len(numerals); i++ {
		w := [3]token{numerals[i], numerals[i+1], numerals[i+2]}
		for _, reading := range windowReadings {
			c, ok := reading.candidate(w, allowShortYear)
			if !ok {
				continue
			}
			if date, ok := c.validate(); ok {
				return Match{Date: date, Rule: reading.rule}, true
			}
		}
	}

	// No window validated: read the first two short numerals as day and month
	// of the reference year.
	short := make([]token, 0, 2)
	for _, n := range numerals {
		if n.digits() <= 2 {
			short = append(short, n)
			if len(short) == 2 {
				break
			}
		}
	}
	if len(short) < 2 {
		return Match{}, false
	}
	year := strconv.Itoa(refYear)
	for _, reading := range pairReadings {
		c := dateCandidate{day: short[reading.day].value, month: short[reading.month].value, year: year}
		if date, ok := c.validate(); ok {
			return Match{Date: date, Rule: reading.rule}, true
		}
	}
	return Match{}, false
}
