package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizedDate_DerivesPeriodTags(t *testing.T) {
	for month := 1; month <= 12; month++ {
		d, err := NewNormalizedDate(2025, month, 1)
		require.NoError(t, err)

		assert.Equal(t, month, d.Month())
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, (month-1)/3+1, d.Quarter(), "month %d", month)
		assert.Equal(t, (month-1)/6+1, d.Semester(), "month %d", month)
		assert.True(t, Quarter(2025, d.Quarter()).Contains(d))
		assert.True(t, Semester(2025, d.Semester()).Contains(d))
	}
}

func TestNewNormalizedDate_Boundaries(t *testing.T) {
	tests := []struct {
		month, day int
		quarter    int
		semester   int
	}{
		{3, 31, 1, 1},
		{4, 1, 2, 1},
		{6, 30, 2, 1},
		{7, 1, 3, 2},
		{9, 30, 3, 2},
		{10, 1, 4, 2},
		{12, 31, 4, 2},
	}

	for _, tt := range tests {
		d, err := NewNormalizedDate(2024, tt.month, tt.day)
		require.NoError(t, err)
		assert.Equal(t, tt.quarter, d.Quarter(), d.String())
		assert.Equal(t, tt.semester, d.Semester(), d.String())
	}
}

func TestNewNormalizedDate_Rejected(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		wantErr          string
	}{
		{"month zero", 2025, 0, 1, "month 0 out of range"},
		{"month thirteen", 2025, 13, 1, "month 13 out of range"},
		{"day zero", 2025, 1, 0, "day 0 out of range"},
		{"day thirty two", 2025, 1, 32, "day 32 out of range"},
		{"february thirtieth", 2024, 2, 30, "not a calendar date"},
		{"non leap february", 2025, 2, 29, "not a calendar date"},
		{"april thirty first", 2025, 4, 31, "not a calendar date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNormalizedDate(tt.year, tt.month, tt.day)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizedDateFromTime_DropsClockAndZone(t *testing.T) {
	wita := time.FixedZone("WITA", 8*3600)
	d := NormalizedDateFromTime(time.Date(2025, 6, 30, 23, 30, 0, 0, wita))

	assert.Equal(t, "2025-06-30", d.String())
	assert.Equal(t, 2, d.Quarter())
	assert.Equal(t, 1, d.Semester())
	assert.Equal(t, time.UTC, d.Date().Location())
}

func TestNormalizedDate_Zero(t *testing.T) {
	var d NormalizedDate
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())

	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))

	set, err := NewNormalizedDate(2025, 1, 15)
	require.NoError(t, err)
	data, err = set.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-15"`, string(data))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Januari", MonthName(1))
	assert.Equal(t, "Desember", MonthName(12))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", MonthName(13))
}
