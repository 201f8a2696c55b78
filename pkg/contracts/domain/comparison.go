package domain

import (
	"github.com/shopspring/decimal"
)

// ComparisonRow compares one group key across two periods
type ComparisonRow struct {
	Key                []string        `json:"key"`
	Current            AggregateBucket `json:"current"`
	Prior              AggregateBucket `json:"prior"`
	CountDelta         int             `json:"count_delta"`
	InvestmentDelta    decimal.Decimal `json:"investment_delta"`
	LaborDomesticDelta int64           `json:"labor_domestic_delta"`
	LaborForeignDelta  int64           `json:"labor_foreign_delta"`
	// PercentDelta is nil when the prior count is zero
	PercentDelta *float64 `json:"percent_delta"`
}

// NewComparisonRow computes the deltas between current and prior
func NewComparisonRow(key []string, current, prior AggregateBucket) ComparisonRow {
	current.Key = key
	prior.Key = key
	row := ComparisonRow{
		Key:                append([]string(nil), key...),
		Current:            current,
		Prior:              prior,
		CountDelta:         current.Count - prior.Count,
		InvestmentDelta:    current.Investment.Sub(prior.Investment),
		LaborDomesticDelta: current.LaborDomestic - prior.LaborDomestic,
		LaborForeignDelta:  current.LaborForeign - prior.LaborForeign,
	}
	if prior.Count != 0 {
		pct := float64(row.CountDelta) / float64(prior.Count) * 100
		row.PercentDelta = &pct
	}
	return row
}

// ComparisonResult holds two aggregations and their per-key comparison
type ComparisonResult struct {
	CurrentSpec PeriodSpec      `json:"current_period"`
	PriorSpec   PeriodSpec      `json:"prior_period"`
	Current     *BucketSet      `json:"current"`
	Prior       *BucketSet      `json:"prior"`
	Rows        []ComparisonRow `json:"rows"`
	Total       ComparisonRow   `json:"total"`
}

// Row returns the comparison row for a key tuple
func (c *ComparisonResult) Row(key ...string) (ComparisonRow, bool) {
	want := JoinKey(key...)
	for _, r := range c.Rows {
		if JoinKey(r.Key...) == want {
			return r, true
		}
	}
	return ComparisonRow{}, false
}
