package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PeriodKind selects the calendar partition of a PeriodSpec
type PeriodKind string

const (
	PeriodQuarter  PeriodKind = "quarter"
	PeriodSemester PeriodKind = "semester"
	PeriodFullYear PeriodKind = "year"
)

// PeriodSpec names a reporting period. Index is 1-4 for quarters, 1-2 for
// semesters and ignored for full years.
type PeriodSpec struct {
	Year  int        `json:"year" validate:"gte=2000,lte=2100"`
	Kind  PeriodKind `json:"kind" validate:"required,oneof=quarter semester year"`
	Index int        `json:"index,omitempty"`
}

// Quarter returns the period for quarter q of year
func Quarter(year, q int) PeriodSpec {
	return PeriodSpec{Year: year, Kind: PeriodQuarter, Index: q}
}

// Semester returns the period for semester s of year
func Semester(year, s int) PeriodSpec {
	return PeriodSpec{Year: year, Kind: PeriodSemester, Index: s}
}

// FullYear returns the period covering all twelve months of year
func FullYear(year int) PeriodSpec {
	return PeriodSpec{Year: year, Kind: PeriodFullYear}
}

// Validate checks the index against the kind
func (p PeriodSpec) Validate() error {
	switch p.Kind {
	case PeriodQuarter:
		if p.Index < 1 || p.Index > 4 {
			return fmt.Errorf("quarter index %d out of range 1-4", p.Index)
		}
	case PeriodSemester:
		if p.Index < 1 || p.Index > 2 {
			return fmt.Errorf("semester index %d out of range 1-2", p.Index)
		}
	case PeriodFullYear:
	default:
		return fmt.Errorf("unknown period kind %q", p.Kind)
	}
	return nil
}

// Months resolves the period to its inclusive month range
func (p PeriodSpec) Months() (first, last int) {
	switch p.Kind {
	case PeriodQuarter:
		return (p.Index-1)*3 + 1, p.Index * 3
	case PeriodSemester:
		return (p.Index-1)*6 + 1, p.Index * 6
	default:
		return 1, 12
	}
}

// Contains reports whether d falls inside the period
func (p PeriodSpec) Contains(d NormalizedDate) bool {
	if d.IsZero() || d.Year() != p.Year {
		return false
	}
	first, last := p.Months()
	return d.Month() >= first && d.Month() <= last
}

// MonthList returns the months of the period in calendar order
func (p PeriodSpec) MonthList() []int {
	first, last := p.Months()
	months := make([]int, 0, last-first+1)
	for m := first; m <= last; m++ {
		months = append(months, m)
	}
	return months
}

// Previous returns the adjacent preceding period of the same kind. The
// previous quarter of Q1 is Q4 of the prior year.
func (p PeriodSpec) Previous() PeriodSpec {
	switch p.Kind {
	case PeriodQuarter:
		if p.Index == 1 {
			return Quarter(p.Year-1, 4)
		}
		return Quarter(p.Year, p.Index-1)
	case PeriodSemester:
		if p.Index == 1 {
			return Semester(p.Year-1, 2)
		}
		return Semester(p.Year, 1)
	default:
		return FullYear(p.Year - 1)
	}
}

// YearAgo returns the same period one year earlier
func (p PeriodSpec) YearAgo() PeriodSpec {
	p.Year--
	return p
}

var romans = []string{"", "I", "II", "III", "IV"}

// Name returns the label used on report pages, e.g. "TW II 2025"
func (p PeriodSpec) Name() string {
	switch p.Kind {
	case PeriodQuarter:
		if p.Index >= 1 && p.Index <= 4 {
			return fmt.Sprintf("TW %s %d", romans[p.Index], p.Year)
		}
	case PeriodSemester:
		if p.Index >= 1 && p.Index <= 2 {
			return fmt.Sprintf("Semester %s %d", romans[p.Index], p.Year)
		}
	case PeriodFullYear:
		return fmt.Sprintf("Tahunan %d", p.Year)
	}
	return fmt.Sprintf("%s %d %d", p.Kind, p.Index, p.Year)
}

// String returns a compact machine label, e.g. "2025-Q2"
func (p PeriodSpec) String() string {
	switch p.Kind {
	case PeriodQuarter:
		return fmt.Sprintf("%d-Q%d", p.Year, p.Index)
	case PeriodSemester:
		return fmt.Sprintf("%d-S%d", p.Year, p.Index)
	default:
		return fmt.Sprintf("%d-FY", p.Year)
	}
}

var periodPattern = regexp.MustCompile(`^(q|tw|triwulan|s|sem|semester)\s*([ivx]+|\d)$`)

// ParsePeriodSpec parses labels such as "Q2", "TW II", "Triwulan 3", "S1",
// "Semester II", "FY" or "Tahunan" for the given year.
func ParsePeriodSpec(label string, year int) (PeriodSpec, error) {
	s := strings.ToLower(strings.Join(strings.Fields(label), " "))
	switch s {
	case "fy", "year", "full year", "tahunan", "annual":
		return FullYear(year), nil
	}

	m := periodPattern.FindStringSubmatch(s)
	if m == nil {
		return PeriodSpec{}, fmt.Errorf("unrecognized period %q", label)
	}

	idx, err := parsePeriodIndex(m[2])
	if err != nil {
		return PeriodSpec{}, fmt.Errorf("unrecognized period %q: %w", label, err)
	}

	var spec PeriodSpec
	switch m[1] {
	case "q", "tw", "triwulan":
		spec = Quarter(year, idx)
	default:
		spec = Semester(year, idx)
	}
	if err := spec.Validate(); err != nil {
		return PeriodSpec{}, err
	}
	return spec, nil
}

func parsePeriodIndex(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	for i, r := range romans {
		if i > 0 && strings.EqualFold(r, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid period index %q", s)
}
