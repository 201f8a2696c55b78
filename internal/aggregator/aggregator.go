// Package aggregator filters records to a reporting period and groups them
// along dimensions. Registrations are deduplicated per month by business ID.
package aggregator

import (
	"fmt"
	"strings"

	apperrors "ossreport/internal/errors"
	"ossreport/pkg/contracts/domain"
)

// Scope selects whether the authority filter applies
type Scope int

const (
	// Scoped keeps only records issued under the governing authority
	Scoped Scope = iota
	// Unfiltered keeps records of every authority
	Unfiltered
)

func (s Scope) String() string {
	if s == Unfiltered {
		return "unfiltered"
	}
	return "scoped"
}

// FilterOptions are the per-call filter settings
type FilterOptions struct {
	Scope              Scope
	GoverningAuthority string
}

// ScopedTo returns options keeping only records of authority
func ScopedTo(authority string) FilterOptions {
	return FilterOptions{Scope: Scoped, GoverningAuthority: authority}
}

// AllAuthorities returns options without the authority filter
func AllAuthorities() FilterOptions {
	return FilterOptions{Scope: Unfiltered}
}

func (o FilterOptions) validate() error {
	if o.Scope == Scoped && strings.TrimSpace(o.GoverningAuthority) == "" {
		return apperrors.NewAppValidationError("scoped aggregation needs a governing authority")
	}
	return nil
}

func (o FilterOptions) keep(r domain.Record) bool {
	if o.Scope == Unfiltered {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Authority), strings.TrimSpace(o.GoverningAuthority))
}

type group struct {
	bucket domain.AggregateBucket
	seen   map[string]struct{}
}

// Aggregate keeps the records inside the period that pass opts and groups them by
// dims. Buckets appear in first-seen order. With no dims the result holds a
// single bucket with an empty key, or nothing when no record matched.
func Aggregate(records []domain.Record, spec domain.PeriodSpec, dims []domain.Dimension, opts FilterOptions) (*domain.BucketSet, error) {
	if err := spec.Validate(); err != nil {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid period: %v", err))
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var (
		order  []string
		groups = make(map[string]*group)
	)

	for _, r := range records {
		if !spec.Contains(r.Date) || !opts.keep(r) {
			continue
		}

		key := make([]string, len(dims))
		for i, d := range dims {
			key[i] = r.DimensionValue(d)
		}
		k := domain.JoinKey(key...)

		g, ok := groups[k]
		if !ok {
			g = &group{
				bucket: domain.AggregateBucket{Key: key},
				seen:   make(map[string]struct{}),
			}
			groups[k] = g
			order = append(order, k)
		}

		if counts(r, g.seen) {
			g.bucket.Count++
		}
		g.bucket.Investment = g.bucket.Investment.Add(r.Investment)
		g.bucket.LaborDomestic += r.LaborDomestic
		g.bucket.LaborForeign += r.LaborForeign
	}

	buckets := make([]domain.AggregateBucket, 0, len(order))
	for _, k := range order {
		buckets = append(buckets, groups[k].bucket)
	}
	return domain.NewBucketSet(dims, buckets), nil
}

// counts reports whether r adds to its group count. Registrations count once
// per distinct (month, business ID); records without an ID never count.
func counts(r domain.Record, seen map[string]struct{}) bool {
	if r.Kind != domain.DatasetRegistration {
		return true
	}
	id := strings.TrimSpace(r.BusinessID)
	if id == "" {
		return false
	}
	k := fmt.Sprintf("%04d-%02d|%s", r.Date.Year(), r.Date.Month(), id)
	if _, dup := seen[k]; dup {
		return false
	}
	seen[k] = struct{}{}
	return true
}

// Totals aggregates without dimensions and returns the single bucket, a zero
// bucket when nothing matched.
func Totals(records []domain.Record, spec domain.PeriodSpec, opts FilterOptions) (domain.AggregateBucket, error) {
	set, err := Aggregate(records, spec, nil, opts)
	if err != nil {
		return domain.AggregateBucket{}, err
	}
	return set.Total(), nil
}

// TopN returns at most n buckets by count descending, ties by key
func TopN(set *domain.BucketSet, n int) []domain.AggregateBucket {
	sorted := set.SortedBy(domain.ByCountDesc)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FillMonths returns a month-keyed set listing every month of the period in
// calendar order, with zero buckets for months that had no records. set
// must be grouped by DimMonth alone.
func FillMonths(set *domain.BucketSet, spec domain.PeriodSpec) *domain.BucketSet {
	months := spec.MonthList()
	buckets := make([]domain.AggregateBucket, 0, len(months))
	for _, m := range months {
		key := fmt.Sprintf("%02d", m)
		b, ok := set.Lookup(key)
		if !ok {
			b = domain.AggregateBucket{Key: []string{key}}
		}
		buckets = append(buckets, b)
	}
	return domain.NewBucketSet([]domain.Dimension{domain.DimMonth}, buckets)
}
