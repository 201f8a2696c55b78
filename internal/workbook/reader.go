// Package workbook reads .xlsx exports into domain.RawTable values with typed
// cells. It knows nothing about datasets beyond DetectKind.
package workbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "ossreport/internal/errors"
	"ossreport/pkg/contracts/domain"
)

// headerScanRows bounds how far down a sheet the header row is searched
const headerScanRows = 10

// Reader converts workbooks to raw tables
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger.With(slog.String("component", "workbook"))}
}

// ReadFile opens path and reads every sheet
func (r *Reader) ReadFile(ctx context.Context, path string) ([]domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()
	return r.readAll(ctx, f)
}

// Read reads every sheet of a workbook byte stream
func (r *Reader) Read(ctx context.Context, src io.Reader) ([]domain.RawTable, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()
	return r.readAll(ctx, f)
}

func (r *Reader) readAll(ctx context.Context, f *excelize.File) ([]domain.RawTable, error) {
	names := f.GetSheetList()
	tables := make([]domain.RawTable, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := r.readSheet(f, name)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("sheet read",
			slog.String("sheet", name),
			slog.Int("header_row", table.HeaderRow),
			slog.Int("columns", len(table.Headers)),
			slog.Int("rows", table.Len()))
		tables = append(tables, table)
	}
	return tables, nil
}

func (r *Reader) readSheet(f *excelize.File, name string) (domain.RawTable, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.RawTable{}, apperrors.NewParsingError("failed to read sheet", err).WithContext("sheet", name)
	}

	table := domain.RawTable{Name: name}
	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return table, nil
	}
	table.HeaderRow = headerIdx + 1
	table.Headers = uniqueHeaders(rows[headerIdx])

	styles := newStyleCache(f)
	for i := headerIdx + 1; i < len(rows); i++ {
		raw := rows[i]
		row := make(domain.Row, len(table.Headers))
		for col, header := range table.Headers {
			if header == "" || col >= len(raw) || strings.TrimSpace(raw[col]) == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return domain.RawTable{}, err
			}
			row[header] = typedCell(f, styles, name, cellName, raw[col])
		}
		table.Rows = append(table.Rows, row)
	}

	// Trailing rows without any value are formatting leftovers
	for len(table.Rows) > 0 && len(table.Rows[len(table.Rows)-1]) == 0 {
		table.Rows = table.Rows[:len(table.Rows)-1]
	}
	return table, nil
}

// findHeaderRow returns the first row among the leading rows with at least
// two non-empty cells, or the first non-empty row.
func findHeaderRow(rows [][]string) int {
	firstNonEmpty := -1
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		n := 0
		for _, c := range rows[i] {
			if strings.TrimSpace(c) != "" {
				n++
			}
		}
		if n >= 2 {
			return i
		}
		if n == 1 && firstNonEmpty < 0 {
			firstNonEmpty = i
		}
	}
	return firstNonEmpty
}

// uniqueHeaders trims headers and suffixes repeats with " (2)", " (3)"...
func uniqueHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	out := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s (%d)", h, n)
		}
		out[i] = h
	}
	return out
}

func typedCell(f *excelize.File, styles *styleCache, sheet, cell, raw string) domain.CellValue {
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return domain.TextCell(raw)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula,
		excelize.CellTypeBool, excelize.CellTypeError:
		return domain.TextCell(raw)

	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return domain.DateCell(t)
		}
		return domain.TextCell(raw)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return domain.TextCell(raw)
	}
	if styles.isDate(sheet, cell) {
		if t, err := excelize.ExcelDateToTime(n, false); err == nil {
			return domain.DateCell(t)
		}
	}
	return domain.NumberCell(n)
}
