package dateparse

// monthNames maps normalized month words to month numbers. Keys are lower-case
// with "ё" already folded and without trailing periods.
var monthNames = map[string]int{
	"январь": 1, "января": 1, "январе": 1, "янв": 1,
	"февраль": 2, "февраля": 2, "феврале": 2, "фев": 2, "февр": 2,
	"март": 3, "марта": 3, "марте": 3, "мар": 3,
	"апрель": 4, "апреля": 4, "апреле": 4, "апр": 4,
	"май": 5, "мая": 5, "мае": 5,
	"июнь": 6, "июня": 6, "июне": 6, "июн": 6,
	"июль": 7, "июля": 7, "июле": 7, "июл": 7,
	"август": 8, "августа": 8, "августе": 8, "авг": 8,
	"сентябрь": 9, "сентября": 9, "сентябре": 9, "сен": 9, "сент": 9,
	"октябрь": 10, "октября": 10, "октябре": 10, "окт": 10,
	"ноябрь": 11, "ноября": 11, "ноябре": 11, "ноя": 11, "нояб": 11,
	"декабрь": 12, "декабря": 12, "декабре": 12, "дек": 12,

	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// genitiveMonths is indexed by month number; index 0 is unused.
var genitiveMonths = [13]string{
	"",
	"января",
	"февраля",
	"марта",
	"апреля",
	"мая",
	"июня",
	"июля",
	"августа",
	"сентября",
	"октября",
	"ноября",
	"декабря",
}

// MonthNumber looks up a normalized month word.
func MonthNumber(word string) (int, bool) {
	month, ok := monthNames[word]
	return month, ok
}
