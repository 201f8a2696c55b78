package services

import (
	"fmt"
	"strings"

	"ossreport/internal/aggregator"
	"ossreport/internal/comparison"
	"ossreport/pkg/contracts/domain"
)

// sectionDef describes one grouped aggregate of the report
type sectionDef struct {
	name       string
	title      string
	dataset    domain.DatasetKind
	dims       []domain.Dimension
	top        bool
	fillMonths bool
}

var (
	byMonth  = []domain.Dimension{domain.DimMonth}
	byRegion = []domain.Dimension{domain.DimRegion}
	byPM     = []domain.Dimension{domain.DimPMStatus}
)

var sectionDefs = []sectionDef{
	{name: "registration.totals", title: "Jumlah NIB", dataset: domain.DatasetRegistration},
	{name: "registration.by_month", title: "NIB per Bulan", dataset: domain.DatasetRegistration, dims: byMonth, fillMonths: true},
	{name: "registration.by_region", title: "NIB per Kabupaten/Kota", dataset: domain.DatasetRegistration, dims: byRegion},
	{name: "registration.by_pm_status", title: "NIB per Status Penanaman Modal", dataset: domain.DatasetRegistration, dims: byPM},
	{name: "registration.by_business_scale", title: "NIB per Skala Usaha", dataset: domain.DatasetRegistration, dims: []domain.Dimension{domain.DimBusinessScale}},
	{name: "registration.by_scale_class", title: "NIB UMK dan Non-UMK", dataset: domain.DatasetRegistration, dims: []domain.Dimension{domain.DimScaleClass}},
	{name: "registration.region_pm_status", title: "NIB per Kabupaten/Kota dan Status PM", dataset: domain.DatasetRegistration, dims: []domain.Dimension{domain.DimRegion, domain.DimPMStatus}},

	{name: "permit.totals", title: "Jumlah Perizinan Berusaha", dataset: domain.DatasetPermit},
	{name: "permit.by_risk_tier", title: "Perizinan per Tingkat Risiko", dataset: domain.DatasetPermit, dims: []domain.Dimension{domain.DimRiskTier}},
	{name: "permit.by_sector", title: "Sektor dengan Perizinan Terbanyak", dataset: domain.DatasetPermit, dims: []domain.Dimension{domain.DimSector}, top: true},
	{name: "permit.by_authority", title: "Perizinan per Kewenangan", dataset: domain.DatasetPermit, dims: []domain.Dimension{domain.DimAuthority}},

	{name: "project.totals", title: "Realisasi Investasi", dataset: domain.DatasetProject},
	{name: "project.by_month", title: "Investasi per Bulan", dataset: domain.DatasetProject, dims: byMonth, fillMonths: true},
	{name: "project.by_region", title: "Investasi per Kabupaten/Kota", dataset: domain.DatasetProject, dims: byRegion},
	{name: "project.by_pm_status", title: "Investasi PMA dan PMDN", dataset: domain.DatasetProject, dims: byPM},
}

// comparisonDef compares one section against an earlier period
type comparisonDef struct {
	section string
	title   string
	dataset domain.DatasetKind
	dims    []domain.Dimension
	mode    domain.ComparisonMode
}

var comparisonDefs = []comparisonDef{
	{section: "registration.totals", title: "NIB dibanding periode sebelumnya", dataset: domain.DatasetRegistration, mode: domain.ComparisonQoQ},
	{section: "registration.totals", title: "NIB dibanding tahun sebelumnya", dataset: domain.DatasetRegistration, mode: domain.ComparisonYoY},
	{section: "permit.totals", title: "Perizinan dibanding periode sebelumnya", dataset: domain.DatasetPermit, mode: domain.ComparisonQoQ},
	{section: "permit.totals", title: "Perizinan dibanding tahun sebelumnya", dataset: domain.DatasetPermit, mode: domain.ComparisonYoY},
	{section: "project.totals", title: "Investasi dibanding periode sebelumnya", dataset: domain.DatasetProject, mode: domain.ComparisonQoQ},
	{section: "project.totals", title: "Investasi dibanding tahun sebelumnya", dataset: domain.DatasetProject, mode: domain.ComparisonYoY},
	{section: "registration.by_region", title: "NIB per Kabupaten/Kota dibanding periode sebelumnya", dataset: domain.DatasetRegistration, dims: byRegion, mode: domain.ComparisonQoQ},
	{section: "registration.by_region", title: "NIB per Kabupaten/Kota dibanding tahun sebelumnya", dataset: domain.DatasetRegistration, dims: byRegion, mode: domain.ComparisonYoY},
	{section: "project.by_region", title: "Investasi per Kabupaten/Kota dibanding periode sebelumnya", dataset: domain.DatasetProject, dims: byRegion, mode: domain.ComparisonQoQ},
	{section: "project.by_region", title: "Investasi per Kabupaten/Kota dibanding tahun sebelumnya", dataset: domain.DatasetProject, dims: byRegion, mode: domain.ComparisonYoY},
}

// SectionNames lists every section a report can hold, in report order
func SectionNames() []string {
	names := make([]string, len(sectionDefs))
	for i, d := range sectionDefs {
		names[i] = d.name
	}
	return names
}

// SectionNamesOf lists the sections built from one dataset
func SectionNamesOf(kind domain.DatasetKind) []string {
	var names []string
	for _, d := range sectionDefs {
		if d.dataset == kind {
			names = append(names, d.name)
		}
	}
	return names
}

// filterFor picks the authority filter of a section from configuration
func (s *ReportService) filterFor(section string) aggregator.FilterOptions {
	if s.cfg.IsUnfiltered(section) {
		return aggregator.AllAuthorities()
	}
	return aggregator.ScopedTo(s.cfg.Report.GoverningAuthority)
}

// scopeWarning flags a dataset that feeds authority-scoped sections while
// none of its records names an authority, so those sections count nothing.
func (s *ReportService) scopeWarning(kind domain.DatasetKind, recs []domain.Record) string {
	if len(recs) == 0 {
		return ""
	}
	for _, r := range recs {
		if r.Authority != "" {
			return ""
		}
	}

	var scoped []string
	for _, name := range SectionNamesOf(kind) {
		if !s.cfg.IsUnfiltered(name) {
			scoped = append(scoped, name)
		}
	}
	if len(scoped) == 0 {
		return ""
	}
	return fmt.Sprintf("no record names an authority; %d sections scoped to %q count none of the %d records (%s). List them under report.unfiltered_sections to count every authority",
		len(scoped), s.cfg.Report.GoverningAuthority, len(recs), strings.Join(scoped, ", "))
}

// buildSections aggregates every section whose dataset was loaded
func (s *ReportService) buildSections(records map[domain.DatasetKind][]domain.Record, period domain.PeriodSpec) ([]domain.ReportSection, error) {
	var out []domain.ReportSection
	for _, def := range sectionDefs {
		recs, ok := records[def.dataset]
		if !ok {
			continue
		}

		opts := s.filterFor(def.name)
		set, err := aggregator.Aggregate(recs, period, def.dims, opts)
		if err != nil {
			return nil, err
		}
		switch {
		case def.fillMonths:
			set = aggregator.FillMonths(set, period)
		case def.top:
			set = domain.NewBucketSet(def.dims, aggregator.TopN(set, s.cfg.Report.TopN))
		}

		out = append(out, domain.ReportSection{
			Name:    def.name,
			Title:   def.title,
			Dataset: def.dataset,
			Scope:   opts.Scope.String(),
			Buckets: set,
		})
	}
	return out, nil
}

// buildComparisons runs the QoQ and YoY comparisons of loaded datasets
func (s *ReportService) buildComparisons(records map[domain.DatasetKind][]domain.Record, period domain.PeriodSpec) ([]domain.ComparisonSection, error) {
	var out []domain.ComparisonSection
	for _, def := range comparisonDefs {
		recs, ok := records[def.dataset]
		if !ok {
			continue
		}

		opts := s.filterFor(def.section)
		var (
			result *domain.ComparisonResult
			err    error
		)
		if def.mode == domain.ComparisonYoY {
			result, err = comparison.YoY(recs, period, def.dims, opts)
		} else {
			result, err = comparison.QoQ(recs, period, def.dims, opts)
		}
		if err != nil {
			return nil, err
		}

		out = append(out, domain.ComparisonSection{
			Name:    def.section + "." + string(def.mode),
			Title:   def.title,
			Dataset: def.dataset,
			Scope:   opts.Scope.String(),
			Mode:    def.mode,
			Result:  result,
		})
	}
	return out, nil
}
