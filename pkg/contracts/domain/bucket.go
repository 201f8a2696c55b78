package domain

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// keySep joins group key parts; it cannot appear in spreadsheet text
const keySep = "\x1f"

// JoinKey builds the lookup key for a group key tuple
func JoinKey(parts ...string) string {
	return strings.Join(parts, keySep)
}

// AggregateBucket holds the metrics of one group
type AggregateBucket struct {
	Key           []string        `json:"key"`
	Count         int             `json:"count"`
	Investment    decimal.Decimal `json:"investment"`
	LaborDomestic int64           `json:"labor_domestic"`
	LaborForeign  int64           `json:"labor_foreign"`
}

// LaborTotal returns domestic plus foreign labor
func (b AggregateBucket) LaborTotal() int64 {
	return b.LaborDomestic + b.LaborForeign
}

// Label joins the key parts for display
func (b AggregateBucket) Label() string {
	return strings.Join(b.Key, " / ")
}

// BucketSet is an ordered, read-only set of buckets. Iteration order is the
// order in which each group key was first seen.
type BucketSet struct {
	dimensions []Dimension
	buckets    []AggregateBucket
	index      map[string]int
}

// NewBucketSet builds a set from buckets in the given order. Buckets with a
// duplicate key are merged into the first occurrence.
func NewBucketSet(dims []Dimension, buckets []AggregateBucket) *BucketSet {
	s := &BucketSet{
		dimensions: append([]Dimension(nil), dims...),
		buckets:    make([]AggregateBucket, 0, len(buckets)),
		index:      make(map[string]int, len(buckets)),
	}
	for _, b := range buckets {
		k := JoinKey(b.Key...)
		if i, ok := s.index[k]; ok {
			s.buckets[i] = mergeBuckets(s.buckets[i], b)
			continue
		}
		b.Key = append([]string(nil), b.Key...)
		s.index[k] = len(s.buckets)
		s.buckets = append(s.buckets, b)
	}
	return s
}

func mergeBuckets(a, b AggregateBucket) AggregateBucket {
	a.Count += b.Count
	a.Investment = a.Investment.Add(b.Investment)
	a.LaborDomestic += b.LaborDomestic
	a.LaborForeign += b.LaborForeign
	return a
}

// Dimensions returns the grouping dimensions of the set
func (s *BucketSet) Dimensions() []Dimension {
	if s == nil {
		return nil
	}
	return append([]Dimension(nil), s.dimensions...)
}

// Len returns the number of groups
func (s *BucketSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.buckets)
}

// Buckets returns a copy of the buckets in first-seen order
func (s *BucketSet) Buckets() []AggregateBucket {
	if s == nil {
		return nil
	}
	out := make([]AggregateBucket, len(s.buckets))
	for i, b := range s.buckets {
		b.Key = append([]string(nil), b.Key...)
		out[i] = b
	}
	return out
}

// Lookup returns the bucket for a key tuple
func (s *BucketSet) Lookup(key ...string) (AggregateBucket, bool) {
	if s == nil {
		return AggregateBucket{}, false
	}
	i, ok := s.index[JoinKey(key...)]
	if !ok {
		return AggregateBucket{}, false
	}
	b := s.buckets[i]
	b.Key = append([]string(nil), b.Key...)
	return b, true
}

// Count returns the count for a key tuple, zero when the group is absent
func (s *BucketSet) Count(key ...string) int {
	b, _ := s.Lookup(key...)
	return b.Count
}

// Total sums every bucket into one with an empty key
func (s *BucketSet) Total() AggregateBucket {
	total := AggregateBucket{Key: []string{}}
	if s == nil {
		return total
	}
	for _, b := range s.buckets {
		total = mergeBuckets(total, b)
	}
	return total
}

// SortedBy returns a copy of the buckets ordered by less
func (s *BucketSet) SortedBy(less func(a, b AggregateBucket) bool) []AggregateBucket {
	out := s.Buckets()
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ByCountDesc orders buckets by count descending, then by label
func ByCountDesc(a, b AggregateBucket) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Label() < b.Label()
}

// ByKey orders buckets lexically by key
func ByKey(a, b AggregateBucket) bool {
	return a.Label() < b.Label()
}

// MarshalJSON encodes the set as its dimensions plus ordered buckets
func (s *BucketSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Dimensions []Dimension       `json:"dimensions"`
		Buckets    []AggregateBucket `json:"buckets"`
		Total      AggregateBucket   `json:"total"`
	}{
		Dimensions: s.Dimensions(),
		Buckets:    s.Buckets(),
		Total:      s.Total(),
	})
}
