package dateparse

// monthMatch is the outcome of the month-name matcher. found is false when the
// text has no month word at all, which hands the input to the numeric matcher.
type monthMatch struct {
	found bool
	match Match
	ok    bool
}

func matchByMonthName(normalized string, refYear int) monthMatch {
	tokens := wordTokens(normalized)
	m := -1
	month := 0
	for i, tok := range tokens {
		if tok.digit {
			continue
		}
		if n, ok := MonthNumber(tok.text); ok {
			m, month = i, n
			break
		}
	}
	if m < 0 {
		return monthMatch{}
	}

	isDay := func(t token) bool {
		return t.digit && t.digits() <= 2 && t.value >= 1 && t.value <= 31
	}
	dayIdx := nearest(tokens, m, isDay, -1, false)
	if dayIdx < 0 {
		return monthMatch{found: true}
	}

	isYear := func(t token) bool {
		return t.digit && t.digits() >= 2 && t.digits() <= 4
	}
	year := refYear
	if yearIdx := nearest(tokens, m, isYear, dayIdx, true); yearIdx >= 0 {
		year = CoerceYear(tokens[yearIdx].text)
	}

	date, ok := NewCalendarDate(tokens[dayIdx].value, month, year)
	return monthMatch{found: true, match: Match{Date: date, Rule: "month_name"}, ok: ok}
}

// nearest scans outward from the month token at m, on one side first and then
// the other, and returns the index of the first token accepted by match.
// exclude is never returned.
func nearest(tokens []token, m int, match func(token) bool, exclude int, forwardFirst bool) int {
	backward := func() int {
		for i := m - 1; i >= 0; i-- {
			if i != exclude && match(tokens[i]) {
				return i
			}
		}
		return -1
	}
	forward := func() int {
		for i := m + 1; i < len(tokens); i++ {
			if i != exclude && match(tokens[i]) {
				return i
			}
		}
		return -1
	}
	first, second := backward, forward
	if forwardFirst {
		first, second = forward, backward
	}
	if i := first(); i >= 0 {
		return i
	}
	return second()
}
