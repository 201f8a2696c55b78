package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Pattern prefixes. A pattern without prefix is a substring match.
const (
	ExactPrefix = "exact:"
	RegexPrefix = "re:"
)

// Matcher reports whether a normalized header satisfies one pattern
type Matcher func(header string) bool

var (
	separatorReplacer = strings.NewReplacer("_", " ", "-", " ", ".", " ", "/", " ")
	dayOfPrefix       = "day of "
)

// NormalizeHeader folds case, turns _ - . / into spaces, collapses
// whitespace and strips a leading "Day of " that pivot-table exports add.
func NormalizeHeader(s string) string {
	s = cases.Fold().String(s)
	s = separatorReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	for strings.HasPrefix(s, dayOfPrefix) {
		s = strings.TrimPrefix(s, dayOfPrefix)
	}
	return s
}

// CompilePattern turns one dictionary entry into a Matcher
func CompilePattern(pattern string) (Matcher, error) {
	switch {
	case strings.HasPrefix(pattern, RegexPrefix):
		expr := strings.TrimPrefix(pattern, RegexPrefix)
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		return re.MatchString, nil

	case strings.HasPrefix(pattern, ExactPrefix):
		want := NormalizeHeader(strings.TrimPrefix(pattern, ExactPrefix))
		if want == "" {
			return nil, fmt.Errorf("invalid pattern %q: empty", pattern)
		}
		return func(header string) bool { return header == want }, nil

	default:
		want := NormalizeHeader(pattern)
		if want == "" {
			return nil, fmt.Errorf("invalid pattern %q: empty", pattern)
		}
		return func(header string) bool { return strings.Contains(header, want) }, nil
	}
}

func compileAll(patterns []string) ([]Matcher, error) {
	out := make([]Matcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := CompilePattern(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
