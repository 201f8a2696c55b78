package domain

import (
	"strconv"
	"strings"
	"time"
)

// CellKind tags the runtime type of a spreadsheet cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// String returns the kind name used in logs
func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// CellValue is a tagged cell variant. Exactly one of Text, Number or Date is
// meaningful, selected by Kind. Field parsers switch on Kind explicitly
// instead of relying on implicit coercion.
type CellValue struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// EmptyCell returns an empty cell
func EmptyCell() CellValue {
	return CellValue{Kind: CellEmpty}
}

// TextCell returns a text cell. Whitespace-only text is treated as empty.
func TextCell(s string) CellValue {
	if strings.TrimSpace(s) == "" {
		return EmptyCell()
	}
	return CellValue{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell
func NumberCell(f float64) CellValue {
	return CellValue{Kind: CellNumber, Number: f}
}

// DateCell returns a date-like cell
func DateCell(t time.Time) CellValue {
	return CellValue{Kind: CellDate, Date: t}
}

// IsEmpty reports whether the cell carries no value
func (c CellValue) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell as text. Numbers are rendered without exponent
// and without a trailing ".0" so that integral identifiers survive.
func (c CellValue) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Row maps an observed header to its cell value
type Row map[string]CellValue

// RawTable is one sheet of a source workbook: ordered headers plus rows keyed
// by those headers. Header naming is not normalized.
type RawTable struct {
	Name    string
	Headers []string
	Rows    []Row
	// HeaderRow is the 1-based sheet row of the headers; zero means row 1
	HeaderRow int
}

// Len returns the number of data rows
func (t RawTable) Len() int {
	return len(t.Rows)
}

// Cell returns the value under header for row i, or an empty cell
func (t RawTable) Cell(i int, header string) CellValue {
	if i < 0 || i >= len(t.Rows) || header == "" {
		return EmptyCell()
	}
	v, ok := t.Rows[i][header]
	if !ok {
		return EmptyCell()
	}
	return v
}

// SheetRow returns the 1-based sheet row number of data row i
func (t RawTable) SheetRow(i int) int {
	header := t.HeaderRow
	if header < 1 {
		header = 1
	}
	return header + 1 + i
}
