package exporter

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"ossreport/pkg/contracts/domain"
)

// formatDecimal formats money with exactly 2 decimal places
func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatPercent leaves the cell empty when there is no prior value to compare to
func formatPercent(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}

func formatBool(b bool) string {
	if b {
		return "ya"
	}
	return "tidak"
}

// dimensionLabels are the column headings of grouping dimensions
var dimensionLabels = map[domain.Dimension]string{
	domain.DimMonth:         "Bulan",
	domain.DimQuarter:       "Triwulan",
	domain.DimRegion:        "Kabupaten/Kota",
	domain.DimRiskTier:      "Tingkat Risiko",
	domain.DimSector:        "Sektor",
	domain.DimPMStatus:      "Status PM",
	domain.DimBusinessScale: "Skala Usaha",
	domain.DimScaleClass:    "Kelompok Skala",
	domain.DimAuthority:     "Kewenangan",
	domain.DimPermitStatus:  "Status Perizinan",
}

func dimensionLabel(d domain.Dimension) string {
	if l, ok := dimensionLabels[d]; ok {
		return l
	}
	return string(d)
}

// keyLabel renders one key part. Month keys become Indonesian month names
// and empty values "(kosong)".
func keyLabel(d domain.Dimension, v string) string {
	if v == "" {
		return "(kosong)"
	}
	if d == domain.DimMonth {
		if m, err := strconv.Atoi(v); err == nil {
			if name := domain.MonthName(m); name != "" {
				return name
			}
		}
	}
	return v
}
