package loader

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"ossreport/pkg/contracts/domain"
)

var currencyReplacer = strings.NewReplacer(
	"Rp.", "", "Rp", "", "rp", "", "RP", "", "IDR", "", "idr", "",
	" ", "", "\u00a0", "", "\t", "",
)

// ParseAmount coerces a cell to a decimal. Text is read in the id-ID
// convention ("." thousands, "," decimal) while the other order is also
// accepted. Unparseable values, NaN and infinities yield zero.
func ParseAmount(cell domain.CellValue) decimal.Decimal {
	switch cell.Kind {
	case domain.CellNumber:
		if math.IsNaN(cell.Number) || math.IsInf(cell.Number, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(cell.Number)
	case domain.CellText:
		d, ok := parseAmountText(cell.Text)
		if !ok {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// ParseCount is ParseAmount truncated to an integer
func ParseCount(cell domain.CellValue) int64 {
	return ParseAmount(cell).IntPart()
}

func parseAmountText(s string) (decimal.Decimal, bool) {
	s = currencyReplacer.Replace(strings.TrimSpace(s))
	if s == "" || s == "-" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	}

	s = normalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// normalizeSeparators rewrites a number to plain "1234.5" form.
//
//	1.234.567,89 -> 1234567.89   (id-ID)
//	1,234,567.89 -> 1234567.89   (en-US)
//	2.500.000    -> 2500000
//	2.500        -> 2500         (single dot, three digits: thousands)
//	2.5          -> 2.5
//	2,5          -> 2.5
func normalizeSeparators(s string) string {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")

	case dots > 1:
		return strings.ReplaceAll(s, ".", "")

	case dots == 1:
		if len(s)-strings.Index(s, ".")-1 == 3 {
			return strings.Replace(s, ".", "", 1)
		}
		return s

	case commas > 1:
		return strings.ReplaceAll(s, ",", "")

	case commas == 1:
		return strings.Replace(s, ",", ".", 1)
	}
	return s
}
