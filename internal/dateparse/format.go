package dateparse

import "fmt"

// Format renders d as «DD» <month in genitive> YYYY г. The zero CalendarDate
// renders as "".
func Format(d CalendarDate) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("«%02d» %s %d г.", d.day, genitiveMonths[d.month], d.year)
}
