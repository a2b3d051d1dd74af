package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	punctuationReplacer = strings.NewReplacer(
		"ё", "е",
		"«", " ", "»", " ", "\"", " ", "'", " ", "`", " ",
		"‘", " ", "’", " ", "‚", " ", "“", " ", "”", " ", "„", " ",
		"‒", "-", "–", "-", "—", "-", "―", "-", "−", "-",
		"\\", "/",
	)
	separatorReplacer = strings.NewReplacer(
		"(", " ", ")", " ", "[", " ", "]", " ", "{", " ", "}", " ",
		",", " ", ";", " ",
	)

	isoTimeSeparatorRE = regexp.MustCompile(`(\d)t(\d{1,2}:\d{2})`)
	clockTimeRE        = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2})(?:\.\d{1,9})?)?(?:\s?(am|pm))?(?:\s?(?:z|utc|gmt))?(?:\s?[+-]\d{2}:?\d{2})?`)
	utcOffsetRE        = regexp.MustCompile(`(^|\s)(?:\+\d{2}:?\d{2}|-\d{2}:\d{2})(\s|$)`)
	yearWordRE         = regexp.MustCompile(`(^|[\s\d])(?:года|год|г)\.?([\s(),;\[\]]|$)`)
)

// Normalize produces the canonical form both matchers work on: lower-case,
// folded letters and quotes, no clock times or UTC offsets, no year-unit
// words, spaces at letter/digit boundaries and single spaces between tokens.
func Normalize(raw string) string {
	s := strings.ToLower(norm.NFC.String(raw))
	s = punctuationReplacer.Replace(s)
	s = isoTimeSeparatorRE.ReplaceAllString(s, "$1 $2")
	s = utcOffsetRE.ReplaceAllString(s, "$1 $2")
	s = stripClockTimes(s)
	s = yearWordRE.ReplaceAllString(s, "$1 $2")
	s = separatorReplacer.Replace(s)
	s = splitLetterDigit(s)
	return strings.Join(strings.Fields(s), " ")
}

func stripClockTimes(s string) string {
	matches := clockTimeRE.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		if !isClockTime(s, m) {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteByte(' ')
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// isClockTime rejects matches glued to more digits or colons ("27:01:2026")
// and values that cannot be a time of day.
func isClockTime(s string, m []int) bool {
	if m[0] > 0 && isDigitOrColon(s[m[0]-1]) {
		return false
	}
	if m[1] < len(s) && isDigitOrColon(s[m[1]]) {
		return false
	}
	hour, _ := strconv.Atoi(s[m[2]:m[3]])
	minute, _ := strconv.Atoi(s[m[4]:m[5]])
	if m[6] >= 0 {
		if second, _ := strconv.Atoi(s[m[6]:m[7]]); second > 59 {
			return false
		}
	}
	maxHour := 23
	if m[8] >= 0 {
		maxHour = 12
	}
	return hour <= maxHour && minute <= 59
}

func isDigitOrColon(c byte) bool {
	return c == ':' || (c >= '0' && c <= '9')
}

func splitLetterDigit(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	var prev rune
	for i, r := range s {
		if i > 0 && (unicode.IsLetter(prev) && unicode.IsDigit(r) || unicode.IsDigit(prev) && unicode.IsLetter(r)) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
