package exporter

import (
	"strconv"

	"ossreport/internal/loader"
	"ossreport/pkg/contracts/domain"
)

// Table is one exported grid: a report section, a comparison or the
// data-quality summary
type Table struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]string
}

// ReportTables flattens a report into tables in report order: summary,
// sections, comparisons and the data-quality block.
func ReportTables(r *domain.Report) []Table {
	tables := []Table{SummaryTable(r)}
	for _, s := range r.Sections {
		tables = append(tables, SectionTable(s))
	}
	for _, c := range r.Comparisons {
		tables = append(tables, ComparisonTable(c))
	}
	return append(tables, QualityTable(r))
}

// SummaryTable lists the report metadata
func SummaryTable(r *domain.Report) Table {
	return Table{
		Name:    "summary",
		Title:   r.Title,
		Headers: []string{"Keterangan", "Nilai"},
		Rows: [][]string{
			{"Judul", r.Title},
			{"Periode", r.PeriodName},
			{"Kode Periode", r.Period.String()},
			{"Kewenangan", r.GoverningAuthority},
			{"Dibuat", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"ID Laporan", r.ID},
		},
	}
}

// SectionTable renders a section with one column per dimension followed by
// the metrics of its dataset and a total row
func SectionTable(s domain.ReportSection) Table {
	dims := s.Buckets.Dimensions()
	t := Table{Name: s.Name, Title: s.Title}
	for _, d := range dims {
		t.Headers = append(t.Headers, dimensionLabel(d))
	}
	t.Headers = append(t.Headers, metricHeaders(s.Dataset)...)

	for _, b := range s.Buckets.Buckets() {
		row := make([]string, 0, len(t.Headers))
		for i, d := range dims {
			row = append(row, keyLabel(d, b.Key[i]))
		}
		t.Rows = append(t.Rows, append(row, metricValues(s.Dataset, b)...))
	}

	total := make([]string, len(dims))
	if len(dims) > 0 {
		total[0] = "Jumlah"
	}
	t.Rows = append(t.Rows, append(total, metricValues(s.Dataset, s.Buckets.Total())...))
	return t
}

// ComparisonTable renders current, prior and delta per key plus a total row
func ComparisonTable(c domain.ComparisonSection) Table {
	res := c.Result
	dims := res.Current.Dimensions()
	t := Table{Name: c.Name, Title: c.Title}
	for _, d := range dims {
		t.Headers = append(t.Headers, dimensionLabel(d))
	}
	t.Headers = append(t.Headers, res.CurrentSpec.Name(), res.PriorSpec.Name(), "Selisih", "Perubahan (%)")
	project := c.Dataset == domain.DatasetProject
	if project {
		t.Headers = append(t.Headers, "Investasi "+res.CurrentSpec.Name(), "Investasi "+res.PriorSpec.Name(), "Selisih Investasi")
	}

	render := func(key []string, r domain.ComparisonRow) []string {
		row := make([]string, 0, len(t.Headers))
		row = append(row, key...)
		row = append(row,
			strconv.Itoa(r.Current.Count),
			strconv.Itoa(r.Prior.Count),
			strconv.Itoa(r.CountDelta),
			formatPercent(r.PercentDelta),
		)
		if project {
			row = append(row,
				formatDecimal(r.Current.Investment),
				formatDecimal(r.Prior.Investment),
				formatDecimal(r.InvestmentDelta),
			)
		}
		return row
	}

	for _, r := range res.Rows {
		key := make([]string, len(dims))
		for i, d := range dims {
			key[i] = keyLabel(d, r.Key[i])
		}
		t.Rows = append(t.Rows, render(key, r))
	}
	total := make([]string, len(dims))
	if len(dims) > 0 {
		total[0] = "Jumlah"
	}
	t.Rows = append(t.Rows, render(total, res.Total))
	return t
}

// QualityTable lists the load statistics of every dataset of the report
func QualityTable(r *domain.Report) Table {
	t := Table{
		Name:  "data_quality",
		Title: "Kualitas Data",
		Headers: []string{
			"Dataset", "Berkas", "Sheet", "Baris", "Dimuat", "Dibuang",
			"Kosong", "Tanggal Kosong", "Tanggal Tidak Valid", "Dari Cache", "Peringatan",
		},
	}
	for _, ds := range r.Datasets {
		q := ds.Quality
		label := ds.Kind.Label()
		if ds.History {
			label += " (pembanding)"
		}
		t.Rows = append(t.Rows, []string{
			label,
			ds.Source,
			q.Sheet,
			strconv.Itoa(q.RowsSeen),
			strconv.Itoa(q.Loaded),
			strconv.Itoa(q.Dropped),
			strconv.Itoa(q.Blank),
			strconv.Itoa(q.Reasons[loader.ReasonMissingDate]),
			strconv.Itoa(q.Reasons[loader.ReasonDateParse]),
			formatBool(ds.Cached),
			q.Warning,
		})
	}
	return t
}

func metricHeaders(kind domain.DatasetKind) []string {
	switch kind {
	case domain.DatasetProject:
		return []string{"Jumlah Proyek", "Investasi (Rp)", "TKI", "TKA", "Total Tenaga Kerja"}
	case domain.DatasetPermit:
		return []string{"Jumlah Perizinan"}
	}
	return []string{"Jumlah NIB"}
}

func metricValues(kind domain.DatasetKind, b domain.AggregateBucket) []string {
	if kind == domain.DatasetProject {
		return []string{
			strconv.Itoa(b.Count),
			formatDecimal(b.Investment),
			formatInt(b.LaborDomestic),
			formatInt(b.LaborForeign),
			formatInt(b.LaborTotal()),
		}
	}
	return []string{strconv.Itoa(b.Count)}
}
