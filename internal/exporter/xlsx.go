package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ossreport/internal/infrastructure"
)

// Excel limits sheet names to 31 characters and forbids a few symbols
const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// XLSXWriter writes tables as sheets of one workbook
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	return &XLSXWriter{logger: infrastructure.WithComponent(logger, "xlsx_writer")}
}

// WriteFile saves tables to path, creating its directory
func (x *XLSXWriter) WriteFile(path string, tables []Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := x.build(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	x.logger.Info("workbook written", slog.String("path", path), slog.Int("sheets", len(tables)))
	return nil
}

// Write streams the workbook to out
func (x *XLSXWriter) Write(out io.Writer, tables []Table) error {
	f, err := x.build(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (x *XLSXWriter) build(tables []Table) (*excelize.File, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no table to write")
	}

	f := excelize.NewFile()
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		f.Close()
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	used := make(map[string]int)
	for i, t := range tables {
		name := uniqueSheetName(t.Name, used)
		if i == 0 {
			err = f.SetSheetName("Sheet1", name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, t, titleStyle, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}
	return f, nil
}

// writeSheet puts the title in A1, headers in row 3 and data below
func writeSheet(f *excelize.File, sheet string, t Table, titleStyle, headerStyle int) error {
	if err := f.SetCellValue(sheet, "A1", t.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return err
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return err
	}
	if len(t.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 3)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A3", last, headerStyle); err != nil {
			return err
		}
		lastCol, _ := excelize.ColumnNumberToName(len(t.Headers))
		if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+4)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

// cellValue stores integers as numbers so spreadsheet sums work. Decimals
// and zero-padded identifiers stay text.
func cellValue(v string) any {
	if v == "" || (len(v) > 1 && v[0] == '0') {
		return v
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return v
}

func uniqueSheetName(name string, used map[string]int) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(name))
	if base == "" {
		base = "Sheet"
	}
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}
	key := strings.ToLower(base)
	used[key]++
	if used[key] == 1 {
		return base
	}
	suffix := fmt.Sprintf(" (%d)", used[key])
	if len(base)+len(suffix) > maxSheetName {
		base = base[:maxSheetName-len(suffix)]
	}
	return base + suffix
}
