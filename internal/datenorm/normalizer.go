// Package datenorm turns heterogeneous spreadsheet date cells into
// domain.NormalizedDate values. It has no clock or locale dependency.
package datenorm

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "ossreport/internal/errors"
	"ossreport/pkg/contracts/domain"
)

// Excel serial bounds: 1 is 1900-01-01, 2958466 is 10000-01-01
const (
	minSerial = 1
	maxSerial = 2958466
)

// timeOfDay matches an optional trailing clock time such as "T08:30:00Z",
// " 10.30 WITA" or ", 10:30". Anything else after the date is rejected.
const timeOfDay = `(?:,?[T ]\d{1,2}[:.]\d{2}(?:[:.]\d{2}(?:\.\d+)?)?(?: ?(?:Z|[+-]\d{2}:?\d{2}|[AaPp][Mm]|WIB|WITA|WIT))?)?`

var (
	isoPattern       = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})` + timeOfDay + `$`)
	numericPattern   = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d+)` + timeOfDay + `$`)
	textualPattern   = regexp.MustCompile(`^(\d{1,2})[\s\-/.]+(\p{L}+)\.?[\s\-/.,]+(\d+)` + timeOfDay + `$`)
	monthYearPattern = regexp.MustCompile(`^(\p{L}+\.?[\s\-/.,]+\d{2,4}|\d{4}[-/.]\d{1,2}|\d{1,2}[-/.]\d{4})$`)
)

// Normalize converts one cell into a NormalizedDate. Every failure is a
// *errors.DateParseError.
func Normalize(cell domain.CellValue) (domain.NormalizedDate, error) {
	switch cell.Kind {
	case domain.CellDate:
		return domain.NormalizedDateFromTime(cell.Date), nil
	case domain.CellNumber:
		return fromSerial(cell.Number)
	case domain.CellText:
		return ParseText(cell.Text)
	default:
		return domain.NormalizedDate{}, fail("", "empty value")
	}
}

// fromSerial accepts whole or fractional Excel serial numbers. The fraction
// is the time of day and is dropped.
func fromSerial(n float64) (domain.NormalizedDate, error) {
	raw := strconv.FormatFloat(n, 'f', -1, 64)
	if math.IsNaN(n) || n < minSerial || n >= maxSerial {
		return domain.NormalizedDate{}, fail(raw, "serial number out of range")
	}
	t, err := excelize.ExcelDateToTime(math.Floor(n), false)
	if err != nil {
		return domain.NormalizedDate{}, fail(raw, err.Error())
	}
	return domain.NormalizedDateFromTime(t), nil
}

// ParseText parses the textual date formats found in OSS exports: ISO,
// day-first numeric and day-first with a month name, optionally preceded by
// a weekday.
func ParseText(s string) (domain.NormalizedDate, error) {
	raw := s
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return domain.NormalizedDate{}, fail(raw, "empty value")
	}
	s = stripWeekday(s)

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return build(raw, m[1], m[2], m[3])
	}
	if m := numericPattern.FindStringSubmatch(s); m != nil {
		return build(raw, m[3], m[2], m[1])
	}
	if m := textualPattern.FindStringSubmatch(s); m != nil {
		month, ok := MonthNumber(m[2])
		if !ok {
			return domain.NormalizedDate{}, fail(raw, "unknown month "+strconv.Quote(m[2]))
		}
		return build(raw, m[3], strconv.Itoa(month), m[1])
	}
	if monthYearPattern.MatchString(s) {
		return domain.NormalizedDate{}, fail(raw, "missing day")
	}
	return domain.NormalizedDate{}, fail(raw, "unrecognized format")
}

// stripWeekday drops a leading "Senin," or "Monday " token
func stripWeekday(s string) string {
	head, rest, found := strings.Cut(s, ",")
	if found && isWeekday(head) {
		return strings.TrimSpace(rest)
	}
	head, rest, found = strings.Cut(s, " ")
	if found && isWeekday(head) {
		return strings.TrimSpace(rest)
	}
	return s
}

func build(raw, year, month, day string) (domain.NormalizedDate, error) {
	if len(year) != 4 {
		return domain.NormalizedDate{}, fail(raw, "year must have four digits")
	}
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	nd, err := domain.NewNormalizedDate(y, m, d)
	if err != nil {
		return domain.NormalizedDate{}, fail(raw, err.Error())
	}
	return nd, nil
}

func fail(value, reason string) error {
	return &apperrors.DateParseError{Value: value, Reason: reason}
}
