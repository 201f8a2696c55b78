package datenorm

import (
	"strings"

	"golang.org/x/text/cases"
)

// monthTable maps lower-cased month tokens to month numbers. Indonesian full
// names, their common abbreviations and the old spellings are listed first;
// English names are accepted as aliases.
var monthTable = map[string]int{
	"januari": 1, "jan": 1, "january": 1,
	"februari": 2, "pebruari": 2, "feb": 2, "peb": 2, "february": 2,
	"maret": 3, "mar": 3, "march": 3,
	"april": 4, "apr": 4,
	"mei": 5, "may": 5,
	"juni": 6, "jun": 6, "june": 6,
	"juli": 7, "jul": 7, "july": 7,
	"agustus": 8, "agu": 8, "agt": 8, "ags": 8, "aug": 8, "august": 8,
	"september": 9, "sep": 9, "sept": 9,
	"oktober": 10, "okt": 10, "oct": 10, "october": 10,
	"november": 11, "nopember": 11, "nov": 11, "nop": 11,
	"desember": 12, "des": 12, "dec": 12, "december": 12,
}

var weekdays = map[string]bool{
	"senin": true, "selasa": true, "rabu": true, "kamis": true,
	"jumat": true, "jum'at": true, "sabtu": true, "minggu": true, "ahad": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"sen": true, "sel": true, "rab": true, "kam": true, "jum": true, "sab": true, "min": true,
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true,
}

// MonthNumber looks up a month token case-insensitively. A trailing dot is
// ignored so "Agu." and "agu" are the same token.
func MonthNumber(token string) (int, bool) {
	key := strings.TrimSuffix(cases.Fold().String(strings.TrimSpace(token)), ".")
	m, ok := monthTable[key]
	return m, ok
}

func isWeekday(token string) bool {
	return weekdays[strings.TrimSuffix(cases.Fold().String(strings.TrimSpace(token)), ".")]
}
