package loader

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ossreport/internal/config"
	"ossreport/internal/resolver"
	"ossreport/internal/shared/testutil"
	"ossreport/pkg/contracts/domain"
)

func resolution(kind domain.DatasetKind, mapping domain.ColumnMapping, headers []string, rows ...domain.Row) resolver.Resolution {
	return resolver.Resolution{
		Kind:    kind,
		Sheet:   domain.RawTable{Name: "Data", Headers: headers, Rows: rows},
		Mapping: mapping,
	}
}

func TestLoad_ProjectInvestments(t *testing.T) {
	res := resolution(domain.DatasetProject,
		domain.ColumnMapping{
			domain.FieldIssueDate:        "Tanggal",
			domain.FieldInvestmentAmount: "Investasi",
			domain.FieldLaborDomestic:    "TKI",
		},
		[]string{"Tanggal", "Investasi", "TKI"},
		domain.Row{"Tanggal": domain.TextCell("15/01/2025"), "Investasi": domain.NumberCell(1_000_000), "TKI": domain.NumberCell(3)},
		domain.Row{"Tanggal": domain.TextCell("16 Januari 2025"), "Investasi": domain.TextCell("2.500.000"), "TKI": domain.TextCell("2")},
		domain.Row{"Tanggal": domain.NumberCell(45673), "Investasi": domain.TextCell("abc")},
	)

	records, report := Load(res).Collect()
	require.Len(t, records, 3)

	sum := decimal.Zero
	var labor int64
	for _, r := range records {
		sum = sum.Add(r.Investment)
		labor += r.LaborDomestic
	}
	assert.True(t, decimal.NewFromInt(3_500_000).Equal(sum))
	assert.Equal(t, int64(5), labor)
	assert.Equal(t, 3, report.Loaded)
	assert.Zero(t, report.Dropped)
}

func TestLoad_IdentifiersStayText(t *testing.T) {
	res := resolution(domain.DatasetRegistration,
		domain.ColumnMapping{domain.FieldBusinessID: "NIB", domain.FieldIssueDate: "Tgl"},
		[]string{"NIB", "Tgl"},
		domain.Row{"NIB": domain.TextCell(" 0012345678901 "), "Tgl": domain.TextCell("2025-01-02")},
		domain.Row{"NIB": domain.NumberCell(9120001234567), "Tgl": domain.TextCell("2025-01-02")},
		domain.Row{"NIB": domain.NumberCell(42), "Tgl": domain.TextCell("2025-01-02")},
	)

	records, _ := Load(res).Collect()
	require.Len(t, records, 3)
	assert.Equal(t, "0012345678901", records[0].BusinessID)
	assert.Equal(t, "9120001234567", records[1].BusinessID)
	assert.Equal(t, "42", records[2].BusinessID)
}

func TestLoad_DropsAndBlanks(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	l := New(Options{}, logger)

	res := resolution(domain.DatasetRegistration,
		domain.ColumnMapping{domain.FieldBusinessID: "NIB", domain.FieldIssueDate: "Tgl"},
		[]string{"NIB", "Tgl", "Catatan"},
		domain.Row{"NIB": domain.TextCell("001"), "Tgl": domain.TextCell("15 Januari 2025")},
		domain.Row{"NIB": domain.TextCell("002"), "Tgl": domain.TextCell("Januari 2025")},
		domain.Row{"Catatan": domain.TextCell("subtotal")},
		domain.Row{"NIB": domain.TextCell("003")},
		domain.Row{"NIB": domain.TextCell("004"), "Tgl": domain.TextCell("31/02/2025")},
	)
	res.Sheet.HeaderRow = 3

	records, report := l.Load(res).Collect()
	require.Len(t, records, 1)
	assert.Equal(t, "001", records[0].BusinessID)
	assert.Equal(t, 4, records[0].SourceRow)

	assert.Equal(t, 4, report.RowsSeen)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, 3, report.Dropped)
	assert.Equal(t, 1, report.Blank)
	assert.Equal(t, map[string]int{ReasonDateParse: 2, ReasonMissingDate: 1}, report.Reasons)
	require.Len(t, report.Drops, 3)
	assert.Equal(t, 5, report.Drops[0].Row)
	assert.Contains(t, report.Drops[0].Detail, "missing day")

	testutil.AssertLogContains(t, handler, slog.LevelWarn, "rows dropped while loading dataset")
}

func TestLoad_FieldCoercion(t *testing.T) {
	l := New(Options{RiskAliases: config.DefaultRiskAliases()}, nil)
	res := resolution(domain.DatasetPermit,
		domain.ColumnMapping{
			domain.FieldBusinessID: "NIB",
			domain.FieldIssueDate:  "Tgl",
			domain.FieldRiskTier:   "Risiko",
			domain.FieldPMStatus:   "PM",
			domain.FieldRegion:     "Kab",
			domain.FieldAuthority:  "Kewenangan",
		},
		[]string{"NIB", "Tgl", "Risiko", "PM", "Kab", "Kewenangan"},
		domain.Row{
			"NIB":        domain.TextCell("1"),
			"Tgl":        domain.DateCell(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
			"Risiko":     domain.TextCell("mr"),
			"PM":         domain.TextCell(" pmdn "),
			"Kab":        domain.TextCell("  Kota   Bandung "),
			"Kewenangan": domain.TextCell("Gubernur "),
		},
		domain.Row{
			"NIB":    domain.TextCell("2"),
			"Tgl":    domain.TextCell("2025-04-02"),
			"Risiko": domain.TextCell("Tinggi"),
		},
	)

	records, _ := l.Load(res).Collect()
	require.Len(t, records, 2)
	assert.Equal(t, "Menengah Rendah", records[0].RiskTier)
	assert.Equal(t, "PMDN", records[0].PMStatus)
	assert.Equal(t, "Kota Bandung", records[0].Region)
	assert.Equal(t, "Gubernur", records[0].Authority)
	assert.Equal(t, 2, records[0].Date.Quarter())
	assert.Equal(t, domain.DatasetPermit, records[0].Kind)
	assert.Equal(t, "Tinggi", records[1].RiskTier)
}

func TestBatch_SingleUseAndLazy(t *testing.T) {
	res := resolution(domain.DatasetRegistration,
		domain.ColumnMapping{domain.FieldBusinessID: "NIB", domain.FieldIssueDate: "Tgl"},
		[]string{"NIB", "Tgl"},
		domain.Row{"NIB": domain.TextCell("1"), "Tgl": domain.TextCell("2025-01-01")},
		domain.Row{"NIB": domain.TextCell("2"), "Tgl": domain.TextCell("2025-01-02")},
		domain.Row{"NIB": domain.TextCell("3"), "Tgl": domain.TextCell("2025-01-03")},
	)

	batch := Load(res)
	assert.Zero(t, batch.Report().RowsSeen)

	var ids []string
	for rec := range batch.All() {
		ids = append(ids, rec.BusinessID)
		if len(ids) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1", "2"}, ids)
	assert.Equal(t, 2, batch.Report().Loaded)

	count := 0
	for range batch.All() {
		count++
	}
	assert.Zero(t, count)
}

func TestLoad_CarriesSheetWarning(t *testing.T) {
	res := resolution(domain.DatasetRegistration,
		domain.ColumnMapping{domain.FieldBusinessID: "NIB", domain.FieldIssueDate: "Tgl"},
		[]string{"NIB", "Tgl"})
	res.Warning = assert.AnError

	_, report := Load(res).Collect()
	assert.Equal(t, assert.AnError.Error(), report.Warning)
}
