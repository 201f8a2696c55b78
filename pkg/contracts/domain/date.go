package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// monthNames holds the Indonesian month names used on report pages
var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of month m (1-12), or "" if out of range
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// NormalizedDate is a calendar date tagged with its month, quarter, semester
// and year. The tags are always derived together from the date and cannot be
// set independently.
type NormalizedDate struct {
	date     time.Time
	month    int
	quarter  int
	semester int
	year     int
}

// NewNormalizedDate validates the calendar day and derives all period tags.
func NewNormalizedDate(year, month, day int) (NormalizedDate, error) {
	if month < 1 || month > 12 {
		return NormalizedDate{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return NormalizedDate{}, fmt.Errorf("day %d out of range", day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return NormalizedDate{}, fmt.Errorf("%04d-%02d-%02d is not a calendar date", year, month, day)
	}
	return newNormalizedDate(t), nil
}

// NormalizedDateFromTime keeps only the calendar part of t in its own location
func NormalizedDateFromTime(t time.Time) NormalizedDate {
	return newNormalizedDate(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

func newNormalizedDate(t time.Time) NormalizedDate {
	m := int(t.Month())
	return NormalizedDate{
		date:     t,
		month:    m,
		quarter:  (m + 2) / 3,
		semester: (m + 5) / 6,
		year:     t.Year(),
	}
}

func (d NormalizedDate) Date() time.Time { return d.date }
func (d NormalizedDate) Month() int      { return d.month }
func (d NormalizedDate) Quarter() int    { return d.quarter }
func (d NormalizedDate) Semester() int   { return d.semester }
func (d NormalizedDate) Year() int       { return d.year }

// IsZero reports whether d was never set
func (d NormalizedDate) IsZero() bool {
	return d.month == 0
}

// String formats the date as ISO 8601
func (d NormalizedDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.date.Format("2006-01-02")
}

// MarshalJSON encodes the date as an ISO 8601 string
func (d NormalizedDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
