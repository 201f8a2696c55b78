package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is one typed row of a dataset. Records are created once by the
// loader and only read afterwards. BusinessID is always text so that leading
// zeros survive.
type Record struct {
	Kind          DatasetKind     `json:"kind"`
	SourceRow     int             `json:"source_row"`
	BusinessID    string          `json:"business_id,omitempty"`
	Date          NormalizedDate  `json:"date"`
	Region        string          `json:"region,omitempty"`
	RiskTier      string          `json:"risk_tier,omitempty"`
	Authority     string          `json:"authority,omitempty"`
	PMStatus      string          `json:"pm_status,omitempty"`
	BusinessScale string          `json:"business_scale,omitempty"`
	PermitStatus  string          `json:"permit_status,omitempty"`
	Sector        string          `json:"sector,omitempty"`
	Investment    decimal.Decimal `json:"investment"`
	LaborDomestic int64           `json:"labor_domestic"`
	LaborForeign  int64           `json:"labor_foreign"`
}

// DimensionValue returns the grouping value of r along d
func (r Record) DimensionValue(d Dimension) string {
	switch d {
	case DimMonth:
		return fmt.Sprintf("%02d", r.Date.Month())
	case DimQuarter:
		return fmt.Sprintf("Q%d", r.Date.Quarter())
	case DimRegion:
		return r.Region
	case DimRiskTier:
		return r.RiskTier
	case DimSector:
		return r.Sector
	case DimPMStatus:
		return r.PMStatus
	case DimBusinessScale:
		return r.BusinessScale
	case DimScaleClass:
		return ScaleClass(r.BusinessScale)
	case DimAuthority:
		return r.Authority
	case DimPermitStatus:
		return r.PermitStatus
	}
	return ""
}
