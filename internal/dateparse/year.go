package dateparse

import "strconv"

// yearPivot splits two-digit years between centuries: 00-50 are 20xx,
// 51-99 are 19xx.
const yearPivot = 50

// CoerceYear expands a year fragment into a full calendar year. Fragments that
// are not numbers yield 0, which the validator rejects.
func CoerceYear(digits string) int {
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	switch len(digits) {
	case 4:
		return value
	case 3:
		return 2000 + value
	case 2:
		if value <= yearPivot {
			return 2000 + value
		}
		return 1900 + value
	default:
		return value
	}
}
