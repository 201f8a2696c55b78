package domain

import (
	"fmt"
	"strings"
	"time"
)

// Report is the output of one report run: aggregated sections and period
// comparisons for one reporting period, plus the data quality of every
// dataset that fed it.
type Report struct {
	ID                 string              `json:"id" validate:"required,uuid"`
	Title              string              `json:"title"`
	Period             PeriodSpec          `json:"period"`
	PeriodName         string              `json:"period_name"`
	GoverningAuthority string              `json:"governing_authority"`
	GeneratedAt        time.Time           `json:"generated_at"`
	Datasets           []DatasetSummary    `json:"datasets"`
	Sections           []ReportSection     `json:"sections"`
	Comparisons        []ComparisonSection `json:"comparisons"`
}

// Section returns the section called name
func (r *Report) Section(name string) (ReportSection, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return ReportSection{}, false
}

// Comparison returns the comparison called name
func (r *Report) Comparison(name string) (ComparisonSection, bool) {
	for _, c := range r.Comparisons {
		if c.Name == name {
			return c, true
		}
	}
	return ComparisonSection{}, false
}

// Dataset returns the summary of the current-period workbook of one
// dataset, if it was part of the run
func (r *Report) Dataset(kind DatasetKind) (DatasetSummary, bool) {
	for _, d := range r.Datasets {
		if d.Kind == kind && !d.History {
			return d, true
		}
	}
	return DatasetSummary{}, false
}

// DatasetSummary describes where a dataset came from and how clean it was.
// History marks a previous-year workbook read only for comparisons.
type DatasetSummary struct {
	Kind    DatasetKind `json:"kind"`
	Source  string      `json:"source"`
	FileID  string      `json:"file_id"`
	Cached  bool        `json:"cached"`
	History bool        `json:"history,omitempty"`
	Quality LoadReport  `json:"quality"`
}

// ReportSection is one grouped aggregate of the report
type ReportSection struct {
	Name    string      `json:"name"`
	Title   string      `json:"title"`
	Dataset DatasetKind `json:"dataset"`
	Scope   string      `json:"scope"`
	Buckets *BucketSet  `json:"buckets"`
}

// ComparisonMode names how the prior period of a comparison was chosen
type ComparisonMode string

const (
	ComparisonQoQ ComparisonMode = "qoq"
	ComparisonYoY ComparisonMode = "yoy"
)

// ComparisonSection is one period comparison of the report
type ComparisonSection struct {
	Name    string            `json:"name"`
	Title   string            `json:"title"`
	Dataset DatasetKind       `json:"dataset"`
	Scope   string            `json:"scope"`
	Mode    ComparisonMode    `json:"mode"`
	Result  *ComparisonResult `json:"result"`
}

// ReportFormat defines the file format of an exported report
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatJSON ReportFormat = "json"
)

// ParseReportFormats accepts a comma separated list; "both" means csv and xlsx
func ParseReportFormats(s string) ([]ReportFormat, error) {
	var out []ReportFormat
	seen := make(map[ReportFormat]bool)
	add := func(f ReportFormat) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, part := range strings.Split(s, ",") {
		switch p := strings.ToLower(strings.TrimSpace(part)); p {
		case "csv":
			add(ReportFormatCSV)
		case "xlsx", "excel":
			add(ReportFormatXLSX)
		case "json":
			add(ReportFormatJSON)
		case "both":
			add(ReportFormatCSV)
			add(ReportFormatXLSX)
		case "":
		default:
			return nil, fmt.Errorf("unknown report format %q", p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no report format given")
	}
	return out, nil
}
