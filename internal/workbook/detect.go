package workbook

import (
	"path/filepath"
	"strings"

	apperrors "ossreport/internal/errors"
	"ossreport/pkg/contracts/domain"
)

// DetectKind guesses which dataset a workbook holds. Single-sheet workbooks
// with project or investment headers are projects; sheet names with RISIKO
// or SEKTOR mark permits; SKALA or JENIS PERUSAHAAN mark registrations. The
// file name decides when the content does not.
func DetectKind(sheets []domain.RawTable, filename string) (domain.DatasetKind, error) {
	if len(sheets) == 1 {
		for _, h := range sheets[0].Headers {
			u := strings.ToUpper(h)
			if strings.Contains(u, "PROYEK") || strings.Contains(u, "INVESTASI") {
				return domain.DatasetProject, nil
			}
		}
	}

	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = strings.ToUpper(s.Name)
	}
	if anyContains(names, "RISIKO", "SEKTOR") {
		return domain.DatasetPermit, nil
	}
	if anyContains(names, "SKALA", "JENIS PERUSAHAAN") {
		return domain.DatasetRegistration, nil
	}

	if kind, ok := KindFromFilename(filename); ok {
		return kind, nil
	}
	return "", apperrors.NewAppValidationError("cannot tell which dataset the workbook holds").
		WithContext("file", filepath.Base(filename))
}

// KindFromFilename maps NIB, PB / PERIZINAN and PROYEK in a file name to a
// dataset kind
func KindFromFilename(filename string) (domain.DatasetKind, bool) {
	u := strings.ToUpper(filepath.Base(filename))
	switch {
	case strings.Contains(u, "NIB"):
		return domain.DatasetRegistration, true
	case strings.Contains(u, "PROYEK"):
		return domain.DatasetProject, true
	case strings.Contains(u, "PB"), strings.Contains(u, "PERIZINAN"):
		return domain.DatasetPermit, true
	}
	return "", false
}

func anyContains(values []string, needles ...string) bool {
	for _, v := range values {
		for _, n := range needles {
			if strings.Contains(v, n) {
				return true
			}
		}
	}
	return false
}
