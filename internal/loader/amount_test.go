package loader

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ossreport/pkg/contracts/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		cell domain.CellValue
		want string
	}{
		{"number", domain.NumberCell(1000000), "1000000"},
		{"fractional number", domain.NumberCell(1500.25), "1500.25"},
		{"id thousands", domain.TextCell("2.500.000"), "2500000"},
		{"id single thousands", domain.TextCell("2.500"), "2500"},
		{"id decimal", domain.TextCell("1.234.567,89"), "1234567.89"},
		{"en decimal", domain.TextCell("1,234,567.89"), "1234567.89"},
		{"comma decimal", domain.TextCell("2,5"), "2.5"},
		{"dot decimal", domain.TextCell("2.5"), "2.5"},
		{"rupiah prefix", domain.TextCell("Rp 2.500.000"), "2500000"},
		{"rupiah dot prefix", domain.TextCell("Rp. 750.000,00"), "750000"},
		{"idr suffix", domain.TextCell("1.000 IDR"), "1000"},
		{"parentheses negative", domain.TextCell("(1.000)"), "-1000"},
		{"minus", domain.TextCell("-2.000"), "-2000"},
		{"nbsp", domain.TextCell("1 000"), "1000"},
		{"garbage", domain.TextCell("abc"), "0"},
		{"dash", domain.TextCell("-"), "0"},
		{"empty", domain.EmptyCell(), "0"},
		{"nan", domain.NumberCell(math.NaN()), "0"},
		{"positive infinity", domain.NumberCell(math.Inf(1)), "0"},
		{"negative infinity", domain.NumberCell(math.Inf(-1)), "0"},
		{"text nan", domain.TextCell("NaN"), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			got := ParseAmount(tt.cell)
			assert.True(t, want.Equal(got), "want %s got %s", want, got)
		})
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(12), ParseCount(domain.NumberCell(12)))
	assert.Equal(t, int64(1200), ParseCount(domain.TextCell("1.200")))
	assert.Equal(t, int64(0), ParseCount(domain.TextCell("n/a")))
}
