package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBucketSet_MergesDuplicateKeys(t *testing.T) {
	dims := []Dimension{DimRegion, DimPMStatus}
	set := NewBucketSet(dims, []AggregateBucket{
		{Key: []string{"Kota Mataram", "PMDN"}, Count: 2, Investment: decimal.NewFromInt(100), LaborDomestic: 3},
		{Key: []string{"Kab. Lombok Barat", "PMA"}, Count: 1, LaborForeign: 2},
		{Key: []string{"Kota Mataram", "PMDN"}, Count: 5, Investment: decimal.NewFromInt(50), LaborForeign: 1},
		{Key: []string{"Kota Mataram", "PMA"}, Count: 1},
	})

	require.Equal(t, 3, set.Len())
	assert.Equal(t, dims, set.Dimensions())

	merged, ok := set.Lookup("Kota Mataram", "PMDN")
	require.True(t, ok)
	assert.Equal(t, 7, merged.Count)
	assert.True(t, decimal.NewFromInt(150).Equal(merged.Investment))
	assert.Equal(t, int64(3), merged.LaborDomestic)
	assert.Equal(t, int64(1), merged.LaborForeign)
	assert.Equal(t, int64(4), merged.LaborTotal())

	// first-seen order survives the merge
	labels := make([]string, 0, set.Len())
	for _, b := range set.Buckets() {
		labels = append(labels, b.Label())
	}
	assert.Equal(t, []string{"Kota Mataram / PMDN", "Kab. Lombok Barat / PMA", "Kota Mataram / PMA"}, labels)

	total := set.Total()
	assert.Equal(t, 9, total.Count)
	assert.Empty(t, total.Key)
}

func TestNewBucketSet_KeysAreNotShared(t *testing.T) {
	key := []string{"Kota Mataram"}
	set := NewBucketSet([]Dimension{DimRegion}, []AggregateBucket{{Key: key, Count: 1}})
	key[0] = "changed"

	assert.Equal(t, 1, set.Count("Kota Mataram"))
	assert.Equal(t, 0, set.Count("changed"))

	out := set.Buckets()
	out[0].Key[0] = "changed again"
	assert.Equal(t, 1, set.Count("Kota Mataram"))
}

func TestJoinKey_PartsDoNotCollide(t *testing.T) {
	assert.NotEqual(t, JoinKey("a b", "c"), JoinKey("a", "b c"))
	assert.NotEqual(t, JoinKey("a/b"), JoinKey("a", "b"))
}

func TestBucketSet_Nil(t *testing.T) {
	var set *BucketSet
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Buckets())
	assert.Equal(t, 0, set.Count("x"))
	assert.Equal(t, 0, set.Total().Count)
}

func TestBucketSet_SortedBy(t *testing.T) {
	set := NewBucketSet([]Dimension{DimSector}, []AggregateBucket{
		{Key: []string{"Perdagangan"}, Count: 2},
		{Key: []string{"Industri"}, Count: 5},
		{Key: []string{"Jasa"}, Count: 2},
	})

	byCount := set.SortedBy(ByCountDesc)
	assert.Equal(t, "Industri", byCount[0].Label())
	assert.Equal(t, "Jasa", byCount[1].Label())
	assert.Equal(t, "Perdagangan", byCount[2].Label())

	byKey := set.SortedBy(ByKey)
	assert.Equal(t, "Industri", byKey[0].Label())
	assert.Equal(t, "Perdagangan", byKey[2].Label())

	// sorting never reorders the set itself
	assert.Equal(t, "Perdagangan", set.Buckets()[0].Label())
}

func TestBucketSet_MarshalJSON(t *testing.T) {
	set := NewBucketSet([]Dimension{DimRegion}, []AggregateBucket{
		{Key: []string{"Kota Mataram"}, Count: 2},
		{Key: []string{"Kota Bima"}, Count: 1},
	})

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var body struct {
		Dimensions []string `json:"dimensions"`
		Buckets    []struct {
			Key   []string `json:"key"`
			Count int      `json:"count"`
		} `json:"buckets"`
		Total struct {
			Count int `json:"count"`
		} `json:"total"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, []string{"region"}, body.Dimensions)
	require.Len(t, body.Buckets, 2)
	assert.Equal(t, []string{"Kota Mataram"}, body.Buckets[0].Key)
	assert.Equal(t, 3, body.Total.Count)
}
