package domain

import (
	"fmt"
	"strings"
)

// DatasetKind identifies one of the three OSS export datasets
type DatasetKind string

const (
	// DatasetRegistration is the NIB (business identification number) export
	DatasetRegistration DatasetKind = "registration"
	// DatasetPermit is the PB OSS (risk-based business permit) export
	DatasetPermit DatasetKind = "permit"
	// DatasetProject is the PROYEK (investment realization) export
	DatasetProject DatasetKind = "project"
)

// DatasetKinds lists every kind in report order
var DatasetKinds = []DatasetKind{DatasetRegistration, DatasetPermit, DatasetProject}

// ParseDatasetKind accepts the canonical names plus the Indonesian file labels
func ParseDatasetKind(s string) (DatasetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "registration", "nib":
		return DatasetRegistration, nil
	case "permit", "pb", "pb_oss", "pb oss", "perizinan":
		return DatasetPermit, nil
	case "project", "proyek":
		return DatasetProject, nil
	}
	return "", fmt.Errorf("unknown dataset kind %q", s)
}

// Label returns the name used on report pages
func (k DatasetKind) Label() string {
	switch k {
	case DatasetRegistration:
		return "NIB"
	case DatasetPermit:
		return "PB OSS"
	case DatasetProject:
		return "PROYEK"
	}
	return string(k)
}

// CanonicalField is a dataset-independent field identifier that loosely named
// spreadsheet headers are resolved to.
type CanonicalField string

const (
	FieldBusinessID       CanonicalField = "BUSINESS_ID"
	FieldIssueDate        CanonicalField = "ISSUE_DATE"
	FieldRegion           CanonicalField = "REGION"
	FieldRiskTier         CanonicalField = "RISK_TIER"
	FieldAuthority        CanonicalField = "AUTHORITY"
	FieldInvestmentAmount CanonicalField = "INVESTMENT_AMOUNT"
	FieldLaborDomestic    CanonicalField = "LABOR_DOMESTIC"
	FieldLaborForeign     CanonicalField = "LABOR_FOREIGN"
	FieldPMStatus         CanonicalField = "PM_STATUS"
	FieldBusinessScale    CanonicalField = "BUSINESS_SCALE"
	FieldPermitStatus     CanonicalField = "PERMIT_STATUS"
	FieldSector           CanonicalField = "SECTOR"
)

// CanonicalFields lists all fields in resolution order
var CanonicalFields = []CanonicalField{
	FieldBusinessID,
	FieldIssueDate,
	FieldRegion,
	FieldRiskTier,
	FieldAuthority,
	FieldInvestmentAmount,
	FieldLaborDomestic,
	FieldLaborForeign,
	FieldPMStatus,
	FieldBusinessScale,
	FieldPermitStatus,
	FieldSector,
}

// ParseCanonicalField accepts a field name in any case, with - or space for _
func ParseCanonicalField(s string) (CanonicalField, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.NewReplacer("-", "_", " ", "_").Replace(name)
	for _, f := range CanonicalFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown canonical field %q", s)
}

// RequiredFields returns the fields without which a table of the given kind
// cannot be loaded.
func RequiredFields(kind DatasetKind) []CanonicalField {
	switch kind {
	case DatasetRegistration, DatasetPermit:
		return []CanonicalField{FieldBusinessID, FieldIssueDate}
	case DatasetProject:
		return []CanonicalField{FieldIssueDate, FieldInvestmentAmount}
	}
	return nil
}

// IsRequired reports whether field is required for kind
func IsRequired(kind DatasetKind, field CanonicalField) bool {
	for _, f := range RequiredFields(kind) {
		if f == field {
			return true
		}
	}
	return false
}

// ColumnMapping maps canonical fields to the matched header of one table
type ColumnMapping map[CanonicalField]string

// Header returns the mapped header, or "" when the field is absent
func (m ColumnMapping) Header(f CanonicalField) string {
	return m[f]
}

// Has reports whether the field was resolved
func (m ColumnMapping) Has(f CanonicalField) bool {
	_, ok := m[f]
	return ok
}

// Dimension is a grouping axis for aggregation
type Dimension string

const (
	DimMonth         Dimension = "month"
	DimQuarter       Dimension = "quarter"
	DimRegion        Dimension = "region"
	DimRiskTier      Dimension = "risk_tier"
	DimSector        Dimension = "sector"
	DimPMStatus      Dimension = "pm_status"
	DimBusinessScale Dimension = "business_scale"
	DimScaleClass    Dimension = "scale_class"
	DimAuthority     Dimension = "authority"
	DimPermitStatus  Dimension = "permit_status"
)

// ParseDimension validates a dimension name
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DimMonth, DimQuarter, DimRegion, DimRiskTier, DimSector, DimPMStatus,
		DimBusinessScale, DimScaleClass, DimAuthority, DimPermitStatus:
		return d, nil
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// Scale classes derived from the business scale field
const (
	ScaleClassUMK    = "UMK"
	ScaleClassNonUMK = "NON-UMK"
)

// ScaleClass maps a business scale label to UMK (micro and small) or NON-UMK
// (medium and large). Unknown labels return "".
func ScaleClass(scale string) string {
	s := strings.ToLower(scale)
	switch {
	case strings.Contains(s, "mikro"), strings.Contains(s, "micro"),
		strings.Contains(s, "kecil"), strings.Contains(s, "small"):
		return ScaleClassUMK
	case strings.Contains(s, "menengah"), strings.Contains(s, "medium"),
		strings.Contains(s, "besar"), strings.Contains(s, "large"):
		return ScaleClassNonUMK
	}
	return ""
}
