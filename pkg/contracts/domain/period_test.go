package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodSpec(t *testing.T) {
	tests := []struct {
		label string
		want  PeriodSpec
	}{
		{"Q2", Quarter(2025, 2)},
		{"q4", Quarter(2025, 4)},
		{"TW II", Quarter(2025, 2)},
		{"tw iv", Quarter(2025, 4)},
		{"TW1", Quarter(2025, 1)},
		{"Triwulan 3", Quarter(2025, 3)},
		{"Triwulan III", Quarter(2025, 3)},
		{"  TW   I  ", Quarter(2025, 1)},
		{"S1", Semester(2025, 1)},
		{"Sem 2", Semester(2025, 2)},
		{"Semester II", Semester(2025, 2)},
		{"semester i", Semester(2025, 1)},
		{"FY", FullYear(2025)},
		{"Tahunan", FullYear(2025)},
		{"full year", FullYear(2025)},
		{"Annual", FullYear(2025)},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParsePeriodSpec(tt.label, 2025)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePeriodSpec_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr string
	}{
		{"empty", "", "unrecognized period"},
		{"quarter zero", "Q0", "out of range 1-4"},
		{"quarter five", "TW 5", "out of range 1-4"},
		{"roman five", "TW V", "unrecognized period"},
		{"roman out of table", "Triwulan IX", "invalid period index"},
		{"semester three", "S3", "out of range 1-2"},
		{"semester roman three", "Semester III", "out of range 1-2"},
		{"two digit index", "Q12", "unrecognized period"},
		{"unknown prefix", "Bulan 1", "unrecognized period"},
		{"trailing text", "TW II 2025", "unrecognized period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePeriodSpec(tt.label, 2025)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPeriodSpec_Months(t *testing.T) {
	tests := []struct {
		period      PeriodSpec
		first, last int
	}{
		{Quarter(2025, 1), 1, 3},
		{Quarter(2025, 2), 4, 6},
		{Quarter(2025, 4), 10, 12},
		{Semester(2025, 1), 1, 6},
		{Semester(2025, 2), 7, 12},
		{FullYear(2025), 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			first, last := tt.period.Months()
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
			assert.Len(t, tt.period.MonthList(), last-first+1)
		})
	}
}

func TestPeriodSpec_PreviousAndYearAgo(t *testing.T) {
	tests := []struct {
		period   PeriodSpec
		previous PeriodSpec
		yearAgo  PeriodSpec
	}{
		{Quarter(2025, 1), Quarter(2024, 4), Quarter(2024, 1)},
		{Quarter(2025, 3), Quarter(2025, 2), Quarter(2024, 3)},
		{Semester(2025, 1), Semester(2024, 2), Semester(2024, 1)},
		{Semester(2025, 2), Semester(2025, 1), Semester(2024, 2)},
		{FullYear(2025), FullYear(2024), FullYear(2024)},
	}

	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			assert.Equal(t, tt.previous, tt.period.Previous())
			assert.Equal(t, tt.yearAgo, tt.period.YearAgo())
		})
	}
}

func TestPeriodSpec_Contains(t *testing.T) {
	mar, err := NewNormalizedDate(2025, 3, 31)
	require.NoError(t, err)
	apr, err := NewNormalizedDate(2025, 4, 1)
	require.NoError(t, err)
	lastYear, err := NewNormalizedDate(2024, 2, 1)
	require.NoError(t, err)

	q1 := Quarter(2025, 1)
	assert.True(t, q1.Contains(mar))
	assert.False(t, q1.Contains(apr))
	assert.False(t, q1.Contains(lastYear))
	assert.False(t, q1.Contains(NormalizedDate{}))
	assert.True(t, FullYear(2025).Contains(apr))
}

func TestPeriodSpec_Labels(t *testing.T) {
	assert.Equal(t, "TW II 2025", Quarter(2025, 2).Name())
	assert.Equal(t, "Semester I 2025", Semester(2025, 1).Name())
	assert.Equal(t, "Tahunan 2025", FullYear(2025).Name())
	assert.Equal(t, "quarter 7 2025", Quarter(2025, 7).Name())
	assert.Equal(t, "2025-Q2", Quarter(2025, 2).String())
	assert.Equal(t, "2025-S1", Semester(2025, 1).String())
	assert.Equal(t, "2025-FY", FullYear(2025).String())
}

func TestPeriodSpec_Validate(t *testing.T) {
	assert.NoError(t, Quarter(2025, 4).Validate())
	assert.NoError(t, FullYear(2025).Validate())
	assert.Error(t, Quarter(2025, 0).Validate())
	assert.Error(t, Semester(2025, 3).Validate())
	assert.Error(t, PeriodSpec{Year: 2025, Kind: "month", Index: 1}.Validate())
}
