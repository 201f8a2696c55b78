package workbook

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "ossreport/internal/errors"
	"ossreport/internal/shared/testutil"
	"ossreport/pkg/contracts/domain"
)

func TestReader_ReadFile_TypedCells(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkbook(t, dir, "nib.xlsx", testutil.Sheet{
		Name: "Data NIB",
		Rows: [][]any{
			{"NIB", "Tanggal Terbit", "Jumlah", "Catatan"},
			{"0012345678901", 45672, 1500.5, "ok"},
			{"0099", "15 Januari 2025", 2, ""},
		},
	})
	testutil.SetDateCell(t, path, "Data NIB", "B2", 45672)

	tables, err := NewReader(nil).ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "Data NIB", tbl.Name)
	assert.Equal(t, 1, tbl.HeaderRow)
	assert.Equal(t, []string{"NIB", "Tanggal Terbit", "Jumlah", "Catatan"}, tbl.Headers)
	require.Equal(t, 2, tbl.Len())

	id := tbl.Cell(0, "NIB")
	assert.Equal(t, domain.CellText, id.Kind)
	assert.Equal(t, "0012345678901", id.Text)

	date := tbl.Cell(0, "Tanggal Terbit")
	require.Equal(t, domain.CellDate, date.Kind)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), date.Date)

	amount := tbl.Cell(0, "Jumlah")
	assert.Equal(t, domain.CellNumber, amount.Kind)
	assert.Equal(t, 1500.5, amount.Number)

	assert.Equal(t, domain.CellText, tbl.Cell(1, "Tanggal Terbit").Kind)
	assert.True(t, tbl.Cell(1, "Catatan").IsEmpty())
}

func TestReader_HeaderRowDetection(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkbook(t, dir, "proyek.xlsx", testutil.Sheet{
		Name: "Proyek",
		Rows: [][]any{
			{"Laporan Realisasi Investasi"},
			{},
			{"ID Proyek", "Jumlah Investasi", "Jumlah Investasi"},
			{"P-1", 1000, 2000},
			{},
			{"P-2", 3000, 4000},
		},
	})

	tables, err := NewReader(nil).ReadFile(context.Background(), path)
	require.NoError(t, err)
	tbl := tables[0]

	assert.Equal(t, 3, tbl.HeaderRow)
	assert.Equal(t, []string{"ID Proyek", "Jumlah Investasi", "Jumlah Investasi (2)"}, tbl.Headers)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, 4, tbl.SheetRow(0))
	assert.Equal(t, 2000.0, tbl.Cell(0, "Jumlah Investasi (2)").Number)
	assert.Empty(t, tbl.Rows[1])
	assert.Equal(t, "P-2", tbl.Cell(2, "ID Proyek").Text)
}

func TestReader_Read_MultipleSheetsAndEmpty(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkbook(t, dir, "pb.xlsx",
		testutil.Sheet{Name: "RISIKO", Rows: [][]any{{"NIB", "Risiko"}, {"1", "MR"}}},
		testutil.Sheet{Name: "Kosong"},
	)

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	tables, err := NewReader(nil).Read(context.Background(), fh)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "RISIKO", tables[0].Name)
	assert.Equal(t, 1, tables[0].Len())
	assert.Equal(t, "Kosong", tables[1].Name)
	assert.Empty(t, tables[1].Headers)
	assert.Zero(t, tables[1].Len())
}

func TestReader_Errors(t *testing.T) {
	r := NewReader(nil)

	_, err := r.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))

	dir := t.TempDir()
	path := testutil.WriteWorkbook(t, dir, "a.xlsx", testutil.Sheet{Name: "A", Rows: [][]any{{"x", "y"}}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.ReadFile(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_TimeValuesAreDates(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"NIB", "Tgl"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"1", time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC)}))
	path := filepath.Join(dir, "t.xlsx")
	require.NoError(t, f.SaveAs(path))

	tables, err := NewReader(nil).ReadFile(context.Background(), path)
	require.NoError(t, err)
	cell := tables[0].Cell(0, "Tgl")
	require.Equal(t, domain.CellDate, cell.Kind)
	assert.Equal(t, 17, cell.Date.Day())
}

func TestIsDateFormatCode(t *testing.T) {
	tests := map[string]bool{
		"dd/mm/yyyy":          true,
		"yyyy-mm-dd":          true,
		"d mmmm yyyy":         true,
		"[$-421]dd mmmm yyyy": true,
		"mm:ss":               false,
		"#,##0.00":            false,
		`"day" 0`:             false,
		`0\d`:                 false,
	}
	for code, want := range tests {
		assert.Equal(t, want, isDateFormatCode(code), code)
	}
}
