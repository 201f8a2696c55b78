// Package loader turns a resolved sheet into typed domain records. Rows whose
// date cannot be parsed are dropped and counted, never fatal.
package loader

import (
	"errors"
	"iter"
	"log/slog"
	"strings"

	"ossreport/internal/datenorm"
	apperrors "ossreport/internal/errors"
	"ossreport/internal/resolver"
	"ossreport/pkg/contracts/domain"
)

// Drop reasons
const (
	ReasonDateParse   = "date_parse"
	ReasonMissingDate = "missing_date"
)

// LoadReport is the data-quality summary of one load
type LoadReport = domain.LoadReport

// Options tunes value coercion
type Options struct {
	// RiskAliases maps risk codes such as "MR" to their labels. Keys are
	// matched case-insensitively.
	RiskAliases map[string]string
}

// Loader builds record batches from resolutions
type Loader struct {
	riskAliases map[string]string
	logger      *slog.Logger
}

// New creates a Loader
func New(opts Options, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	aliases := make(map[string]string, len(opts.RiskAliases))
	for code, label := range opts.RiskAliases {
		aliases[strings.ToUpper(strings.TrimSpace(code))] = label
	}
	return &Loader{
		riskAliases: aliases,
		logger:      logger.With(slog.String("component", "loader")),
	}
}

// Load is Loader.Load without risk aliases and with the default logger
func Load(res resolver.Resolution) *Batch {
	return New(Options{}, nil).Load(res)
}

// Load prepares a lazy batch over the resolved sheet. Nothing is read until
// the batch is iterated.
func (l *Loader) Load(res resolver.Resolution) *Batch {
	b := &Batch{loader: l, res: res}
	b.report = LoadReport{Kind: res.Kind, Sheet: res.Sheet.Name}
	if res.Warning != nil {
		b.report.Warning = res.Warning.Error()
	}
	return b
}

// Batch is a single-use lazy sequence of records plus the report of what was
// read. The report is complete once All has been fully consumed.
type Batch struct {
	loader   *Loader
	res      resolver.Resolution
	report   LoadReport
	consumed bool
}

// All yields records in source order. A second iteration yields nothing.
func (b *Batch) All() iter.Seq[domain.Record] {
	return func(yield func(domain.Record) bool) {
		if b.consumed {
			return
		}
		b.consumed = true

		table := b.res.Sheet
		for i := range table.Rows {
			rec, ok := b.convert(i)
			if !ok {
				continue
			}
			b.report.Loaded++
			if !yield(rec) {
				return
			}
		}
		b.logSummary()
	}
}

// Report returns the load report gathered so far
func (b *Batch) Report() LoadReport {
	return b.report
}

// Collect drains the batch
func (b *Batch) Collect() ([]domain.Record, LoadReport) {
	records := make([]domain.Record, 0, b.res.Sheet.Len())
	for rec := range b.All() {
		records = append(records, rec)
	}
	return records, b.report
}

func (b *Batch) convert(i int) (domain.Record, bool) {
	table := b.res.Sheet
	mapping := b.res.Mapping
	cell := func(f domain.CanonicalField) domain.CellValue {
		return table.Cell(i, mapping.Header(f))
	}

	if isBlank(table, i, mapping) {
		b.report.Blank++
		return domain.Record{}, false
	}
	b.report.RowsSeen++

	sheetRow := table.SheetRow(i)
	dateCell := cell(domain.FieldIssueDate)
	if dateCell.IsEmpty() {
		b.report.Drop(sheetRow, ReasonMissingDate, "empty date cell")
		return domain.Record{}, false
	}
	date, err := datenorm.Normalize(dateCell)
	if err != nil {
		detail := err.Error()
		var dpe *apperrors.DateParseError
		if errors.As(err, &dpe) {
			detail = dpe.Reason + ": " + dpe.Value
		}
		b.report.Drop(sheetRow, ReasonDateParse, detail)
		return domain.Record{}, false
	}

	return domain.Record{
		Kind:          b.res.Kind,
		SourceRow:     sheetRow,
		BusinessID:    strings.TrimSpace(cell(domain.FieldBusinessID).String()),
		Date:          date,
		Region:        text(cell(domain.FieldRegion)),
		RiskTier:      b.loader.riskTier(cell(domain.FieldRiskTier)),
		Authority:     text(cell(domain.FieldAuthority)),
		PMStatus:      strings.ToUpper(text(cell(domain.FieldPMStatus))),
		BusinessScale: text(cell(domain.FieldBusinessScale)),
		PermitStatus:  text(cell(domain.FieldPermitStatus)),
		Sector:        text(cell(domain.FieldSector)),
		Investment:    ParseAmount(cell(domain.FieldInvestmentAmount)),
		LaborDomestic: ParseCount(cell(domain.FieldLaborDomestic)),
		LaborForeign:  ParseCount(cell(domain.FieldLaborForeign)),
	}, true
}

func (b *Batch) logSummary() {
	r := b.report
	attrs := []any{
		slog.String("dataset", string(r.Kind)),
		slog.String("sheet", r.Sheet),
		slog.Int("rows_seen", r.RowsSeen),
		slog.Int("loaded", r.Loaded),
		slog.Int("dropped", r.Dropped),
	}
	if r.Dropped > 0 {
		b.loader.logger.Warn("rows dropped while loading dataset", attrs...)
		return
	}
	b.loader.logger.Debug("dataset loaded", attrs...)
}

func (l *Loader) riskTier(c domain.CellValue) string {
	v := text(c)
	if label, ok := l.riskAliases[strings.ToUpper(v)]; ok {
		return label
	}
	return v
}

// isBlank reports whether every mapped cell of row i is empty
func isBlank(table domain.RawTable, i int, mapping domain.ColumnMapping) bool {
	for _, header := range mapping {
		if !table.Cell(i, header).IsEmpty() {
			return false
		}
	}
	return true
}

func text(c domain.CellValue) string {
	return strings.Join(strings.Fields(c.String()), " ")
}
