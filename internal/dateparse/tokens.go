package dateparse

import (
	"strconv"
	"strings"
)

// token is a word or numeral from normalized text. text keeps the source
// spelling so "07" and "7" stay distinguishable.
type token struct {
	text  string
	value int
	digit bool
}

func (t token) digits() int {
	if !t.digit {
		return 0
	}
	return len(t.text)
}

func newToken(text string) token {
	if !isAllDigits(text) {
		return token{text: text}
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return token{text: text}
	}
	return token{text: text, value: value, digit: true}
}

// wordTokens splits normalized text on whitespace and the date separators
// / . - : and drops empty pieces.
func wordTokens(normalized string) []token {
	parts := strings.FieldsFunc(normalized, func(r rune) bool {
		switch r {
		case ' ', '/', '.', '-', ':':
			return true
		}
		return false
	})
	out := make([]token, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimRight(part, ".")
		if part == "" {
			continue
		}
		out = append(out, newToken(part))
	}
	return out
}

// numeralTokens returns every maximal digit run of 1 to 4 digits in order.
// Longer runs (phone numbers, ids) are not date parts and are skipped.
func numeralTokens(normalized string) []token {
	var out []token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if n := end - start; n >= 1 && n <= 4 {
			out = append(out, newToken(normalized[start:end]))
		}
		start = -1
	}
	for i := 0; i < len(normalized); i++ {
		if isDigit(normalized[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(normalized))
	return out
}

func onlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
