// Package comparison compares aggregates of two reporting periods. The
// caller decides which periods are compared; QoQ and YoY are shortcuts.
package comparison

import (
	"ossreport/internal/aggregator"
	"ossreport/pkg/contracts/domain"
)

// Compare aggregates records for current and prior with the same dims and
// filter, then computes per-key deltas. Rows follow the current period's
// key order, followed by keys only seen in the prior period.
func Compare(records []domain.Record, current, prior domain.PeriodSpec, dims []domain.Dimension, opts aggregator.FilterOptions) (*domain.ComparisonResult, error) {
	cur, err := aggregator.Aggregate(records, current, dims, opts)
	if err != nil {
		return nil, err
	}
	prev, err := aggregator.Aggregate(records, prior, dims, opts)
	if err != nil {
		return nil, err
	}
	return CompareSets(current, prior, cur, prev), nil
}

// CompareSets builds the comparison of two already aggregated sets
func CompareSets(currentSpec, priorSpec domain.PeriodSpec, current, prior *domain.BucketSet) *domain.ComparisonResult {
	result := &domain.ComparisonResult{
		CurrentSpec: currentSpec,
		PriorSpec:   priorSpec,
		Current:     current,
		Prior:       prior,
	}

	for _, b := range current.Buckets() {
		p, _ := prior.Lookup(b.Key...)
		result.Rows = append(result.Rows, domain.NewComparisonRow(b.Key, b, p))
	}
	for _, p := range prior.Buckets() {
		if _, ok := current.Lookup(p.Key...); ok {
			continue
		}
		result.Rows = append(result.Rows, domain.NewComparisonRow(p.Key, domain.AggregateBucket{}, p))
	}

	result.Total = domain.NewComparisonRow([]string{}, current.Total(), prior.Total())
	return result
}

// QoQ compares current against the adjacent preceding period
func QoQ(records []domain.Record, current domain.PeriodSpec, dims []domain.Dimension, opts aggregator.FilterOptions) (*domain.ComparisonResult, error) {
	return Compare(records, current, current.Previous(), dims, opts)
}

// YoY compares current against the same period one year earlier
func YoY(records []domain.Record, current domain.PeriodSpec, dims []domain.Dimension, opts aggregator.FilterOptions) (*domain.ComparisonResult, error) {
	return Compare(records, current, current.YearAgo(), dims, opts)
}
