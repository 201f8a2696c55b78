// Package resolver decides which sheet of a workbook holds a dataset and
// which of its loosely named headers carry each canonical field.
package resolver

import (
	"fmt"
	"log/slog"

	"ossreport/internal/config"
	apperrors "ossreport/internal/errors"
	"ossreport/pkg/contracts/domain"
)

// Resolution is the chosen sheet of one dataset plus its column mapping.
// Warning is non-nil when the sheet was picked by fallback.
type Resolution struct {
	Kind       domain.DatasetKind
	Sheet      domain.RawTable
	SheetIndex int
	Mapping    domain.ColumnMapping
	Warning    error
}

// Resolve picks the sheet for the dictionary's dataset kind and maps its
// headers. A missing required field is returned as *SchemaMismatchError.
func Resolve(sheets []domain.RawTable, dict *KeywordDictionary) (Resolution, error) {
	kind := dict.Kind()
	if len(sheets) == 0 {
		return Resolution{}, &apperrors.SchemaMismatchError{Kind: string(kind), Field: "(sheet)"}
	}

	idx, warning := selectSheet(sheets, dict)
	sheet := sheets[idx]

	mapping, err := MapColumns(sheet, dict)
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Kind:       kind,
		Sheet:      sheet,
		SheetIndex: idx,
		Mapping:    mapping,
		Warning:    warning,
	}, nil
}

// MapColumns resolves every canonical field of the dictionary against the
// table headers. Optional fields without a match are left out.
func MapColumns(table domain.RawTable, dict *KeywordDictionary) (domain.ColumnMapping, error) {
	normalized := normalizeAll(table.Headers)
	mapping := make(domain.ColumnMapping)

	for _, field := range domain.CanonicalFields {
		i := dict.matchHeader(field, normalized)
		if i < 0 {
			if domain.IsRequired(dict.Kind(), field) {
				return nil, &apperrors.SchemaMismatchError{
					Kind:    string(dict.Kind()),
					Field:   string(field),
					Sheet:   table.Name,
					Headers: nonEmpty(table.Headers),
				}
			}
			continue
		}
		mapping[field] = table.Headers[i]
	}

	return mapping, nil
}

// selectSheet returns the candidate with the most rows, earliest on ties.
// Without any candidate the first sheet is used and a warning returned.
func selectSheet(sheets []domain.RawTable, dict *KeywordDictionary) (int, error) {
	best := -1
	for i, s := range sheets {
		if !dict.isCandidate(normalizeAll(s.Headers)) {
			continue
		}
		if best < 0 || s.Len() > sheets[best].Len() {
			best = i
		}
	}
	if best >= 0 {
		return best, nil
	}

	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.Name
	}
	return 0, &apperrors.SheetSelectionAmbiguousError{
		Kind:     string(dict.Kind()),
		Fallback: sheets[0].Name,
		Sheets:   names,
	}
}

func normalizeAll(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}

func nonEmpty(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}

// Resolver holds one compiled dictionary per dataset kind
type Resolver struct {
	dicts  map[domain.DatasetKind]*KeywordDictionary
	logger *slog.Logger
}

// NewFromConfig compiles the effective keyword dictionaries of cfg
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		dicts:  make(map[domain.DatasetKind]*KeywordDictionary, len(domain.DatasetKinds)),
		logger: logger.With(slog.String("component", "resolver")),
	}
	for _, kind := range domain.DatasetKinds {
		dict, err := NewKeywordDictionary(kind, cfg.FieldKeywords(kind), cfg.SheetKeywords(kind))
		if err != nil {
			return nil, apperrors.NewConfigError("invalid keyword dictionary", err)
		}
		r.dicts[kind] = dict
	}
	return r, nil
}

// Dictionary returns the compiled dictionary for kind
func (r *Resolver) Dictionary(kind domain.DatasetKind) (*KeywordDictionary, error) {
	dict, ok := r.dicts[kind]
	if !ok {
		return nil, fmt.Errorf("no keyword dictionary for dataset %q", kind)
	}
	return dict, nil
}

// Resolve is the package Resolve with the dictionary of kind. Sheet fallbacks
// are logged at WARN and kept on the Resolution.
func (r *Resolver) Resolve(sheets []domain.RawTable, kind domain.DatasetKind) (Resolution, error) {
	dict, err := r.Dictionary(kind)
	if err != nil {
		return Resolution{}, err
	}

	res, err := Resolve(sheets, dict)
	if err != nil {
		r.logger.Error("column resolution failed",
			slog.String("dataset", string(kind)),
			slog.String("error", err.Error()))
		return Resolution{}, err
	}

	if res.Warning != nil {
		r.logger.Warn("sheet selection fell back to first sheet",
			slog.String("dataset", string(kind)),
			slog.String("sheet", res.Sheet.Name),
			slog.String("warning", res.Warning.Error()))
	}

	r.logger.Debug("columns resolved",
		slog.String("dataset", string(kind)),
		slog.String("sheet", res.Sheet.Name),
		slog.Int("mapped_fields", len(res.Mapping)))

	return res, nil
}
