package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet describes one worksheet of a fixture workbook. The first row is
// usually the header row.
type Sheet struct {
	Name string
	Rows [][]any
}

// WriteWorkbook writes sheets into dir/name as an xlsx file and returns its
// path. The default "Sheet1" is replaced by the first sheet.
func WriteWorkbook(t *testing.T, dir, name string, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			t.Fatalf("new sheet %s: %v", sh.Name, err)
		}
		for r, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
				t.Fatalf("write row %d of %s: %v", r+1, sh.Name, err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// SetDateCell writes an Excel date serial with a date number format, the way
// spreadsheets exported from the OSS portal store issue dates.
func SetDateCell(t *testing.T, path, sheet, cell string, serial float64) {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	style, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	if err := f.SetCellValue(sheet, cell, serial); err != nil {
		t.Fatalf("set %s: %v", cell, err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
		t.Fatalf("style %s: %v", cell, err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

// RegistrationRows builds a registration sheet body from
// {NIB, issue date, region, authority} tuples
func RegistrationRows(rows ...[4]string) [][]any {
	out := [][]any{{"NIB", "Tanggal Terbit OSS", "Kab/Kota", "Kewenangan", "Status PM", "Skala Usaha"}}
	for i, r := range rows {
		out = append(out, []any{r[0], r[1], r[2], r[3], pmFor(i), "Mikro"})
	}
	return out
}

func pmFor(i int) string {
	if i%2 == 0 {
		return "PMDN"
	}
	return "PMA"
}

// CellName is a shorthand for excelize.CoordinatesToCellName in tests
func CellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(fmt.Sprintf("cell name %d,%d: %v", col, row, err))
	}
	return name
}
