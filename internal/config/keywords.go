package config

import (
	"ossreport/pkg/contracts/domain"
)

// Default keyword dictionaries for the OSS RBA exports. Pattern order is
// priority order. Headers are normalized before matching, so "kab kota"
// matches "KAB_KOTA", "Kab/Kota" and "Day of Kab Kota".
var defaultFieldKeywords = map[domain.DatasetKind]map[domain.CanonicalField][]string{
	domain.DatasetRegistration: {
		domain.FieldBusinessID:    {"exact:nib", "nomor induk berusaha", "nib"},
		domain.FieldIssueDate:     {"tanggal terbit", "tgl terbit", "tanggal", "tgl", "date"},
		domain.FieldRegion:        {"kab kota", "kabupaten", "wilayah", "region"},
		domain.FieldAuthority:     {"kewenangan", "authority"},
		domain.FieldPMStatus:      {"status penanaman modal", "status pm", "penanaman modal"},
		domain.FieldBusinessScale: {"uraian skala usaha", "skala usaha", "skala"},
		domain.FieldSector:        {"sektor", "kbli"},
	},
	domain.DatasetPermit: {
		domain.FieldBusinessID:    {"exact:nib", "nomor induk berusaha", "nib"},
		domain.FieldIssueDate:     {"tgl izin", "tanggal izin", "tanggal terbit", "tanggal", "tgl", "date"},
		domain.FieldRiskTier:      {"uraian risiko", "risiko", "kd resiko", "resiko", "risk"},
		domain.FieldSector:        {"sektor", "sector", "judul kbli", "kbli"},
		domain.FieldAuthority:     {"kewenangan", "authority"},
		domain.FieldRegion:        {"kab kota", "kabupaten", "wilayah"},
		domain.FieldPermitStatus:  {"status perizinan", "status izin", "exact:status"},
		domain.FieldPMStatus:      {"status penanaman modal", "status pm"},
		domain.FieldBusinessScale: {"uraian skala usaha", "skala usaha"},
	},
	domain.DatasetProject: {
		domain.FieldBusinessID:       {"id proyek", "exact:nib", "nib"},
		domain.FieldIssueDate:        {"tanggal pengajuan proyek", "tanggal pengajuan", "tanggal", "tgl"},
		domain.FieldInvestmentAmount: {"jumlah investasi", "total investasi", "investasi"},
		domain.FieldRegion:           {"kab kota usaha", "kab kota", "kabupaten", "wilayah"},
		domain.FieldPMStatus:         {"status pm", "status penanaman modal", "penanaman modal"},
		domain.FieldLaborDomestic:    {"exact:tki", "tenaga kerja indonesia", "tki"},
		domain.FieldLaborForeign:     {"exact:tka", "tenaga kerja asing", "tka"},
		domain.FieldAuthority:        {"kewenangan", "authority"},
		domain.FieldSector:           {"sektor", "kbli"},
		domain.FieldBusinessScale:    {"uraian skala usaha", "skala usaha"},
		domain.FieldRiskTier:         {"uraian risiko", "risiko"},
	},
}

// A sheet is a candidate for a dataset when one of its headers contains one
// of these keywords.
var defaultSheetKeywords = map[domain.DatasetKind][]string{
	domain.DatasetRegistration: {"nib", "tanggal terbit"},
	domain.DatasetPermit:       {"risiko", "resiko", "kbli", "nib"},
	domain.DatasetProject:      {"investasi", "id proyek", "tki"},
}

// DefaultRiskAliases maps the risk codes used by some exports to their labels
func DefaultRiskAliases() map[string]string {
	return map[string]string{
		"R":  "Rendah",
		"MR": "Menengah Rendah",
		"MT": "Menengah Tinggi",
		"T":  "Tinggi",
	}
}

// DefaultFieldKeywords returns a copy of the built-in dictionary for kind
func DefaultFieldKeywords(kind domain.DatasetKind) map[domain.CanonicalField][]string {
	out := make(map[domain.CanonicalField][]string, len(defaultFieldKeywords[kind]))
	for f, patterns := range defaultFieldKeywords[kind] {
		out[f] = append([]string(nil), patterns...)
	}
	return out
}

// FieldKeywords returns the effective dictionary for kind: the built-in
// patterns with per-field YAML overrides applied.
func (c *Config) FieldKeywords(kind domain.DatasetKind) map[domain.CanonicalField][]string {
	out := DefaultFieldKeywords(kind)
	for k, fields := range c.Keywords.Fields {
		if parsed, err := domain.ParseDatasetKind(k); err != nil || parsed != kind {
			continue
		}
		for name, patterns := range fields {
			field, err := domain.ParseCanonicalField(name)
			if err != nil {
				continue
			}
			out[field] = append([]string(nil), patterns...)
		}
	}
	return out
}

// SheetKeywords returns the effective sheet keywords for kind
func (c *Config) SheetKeywords(kind domain.DatasetKind) []string {
	for k, keywords := range c.Keywords.Sheets {
		if parsed, err := domain.ParseDatasetKind(k); err == nil && parsed == kind {
			return append([]string(nil), keywords...)
		}
	}
	return append([]string(nil), defaultSheetKeywords[kind]...)
}
