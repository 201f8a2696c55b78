package resolver

import (
	"fmt"

	"ossreport/pkg/contracts/domain"
)

// KeywordDictionary is the compiled keyword configuration of one dataset
// kind. It is immutable and safe to share.
type KeywordDictionary struct {
	kind   domain.DatasetKind
	fields map[domain.CanonicalField][]Matcher
	sheets []Matcher
}

// NewKeywordDictionary compiles the ordered patterns per field and the sheet
// keywords for kind.
func NewKeywordDictionary(kind domain.DatasetKind, fields map[domain.CanonicalField][]string, sheetKeywords []string) (*KeywordDictionary, error) {
	d := &KeywordDictionary{
		kind:   kind,
		fields: make(map[domain.CanonicalField][]Matcher, len(fields)),
	}

	for field, patterns := range fields {
		matchers, err := compileAll(patterns)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", kind, field, err)
		}
		d.fields[field] = matchers
	}

	for _, required := range domain.RequiredFields(kind) {
		if len(d.fields[required]) == 0 {
			return nil, fmt.Errorf("%s: no patterns for required field %s", kind, required)
		}
	}

	sheets, err := compileAll(sheetKeywords)
	if err != nil {
		return nil, fmt.Errorf("%s sheet keywords: %w", kind, err)
	}
	d.sheets = sheets

	return d, nil
}

// Kind returns the dataset kind the dictionary belongs to
func (d *KeywordDictionary) Kind() domain.DatasetKind {
	return d.kind
}

// matchHeader returns the index of the header chosen for field, or -1.
// Patterns are tried in priority order; for each pattern the leftmost
// matching header wins.
func (d *KeywordDictionary) matchHeader(field domain.CanonicalField, normalized []string) int {
	for _, m := range d.fields[field] {
		for i, h := range normalized {
			if h != "" && m(h) {
				return i
			}
		}
	}
	return -1
}

// isCandidate reports whether any header carries a sheet keyword
func (d *KeywordDictionary) isCandidate(normalized []string) bool {
	for _, h := range normalized {
		if h == "" {
			continue
		}
		for _, m := range d.sheets {
			if m(h) {
				return true
			}
		}
	}
	return false
}
