package exporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ossreport/internal/config"
	"ossreport/pkg/contracts/domain"
)

func TestExporter_Export(t *testing.T) {
	out := t.TempDir()
	exp := New(&config.Paths{OutputDir: out}, nil)
	r := testReport(t)

	files, err := exp.Export(r, []domain.ReportFormat{
		domain.ReportFormatCSV,
		domain.ReportFormatXLSX,
		domain.ReportFormatJSON,
	})
	require.NoError(t, err)

	csvDir := filepath.Join(out, "laporan_oss_2024-Q1")
	assert.Equal(t, []string{
		filepath.Join(csvDir, "summary.csv"),
		filepath.Join(csvDir, "registration_by_month.csv"),
		filepath.Join(csvDir, "project_by_pm_status.csv"),
		filepath.Join(csvDir, "registration_by_region_qoq.csv"),
		filepath.Join(csvDir, "data_quality.csv"),
		filepath.Join(out, "laporan_oss_2024-Q1.xlsx"),
		filepath.Join(out, "laporan_oss_2024-Q1.json"),
	}, files)

	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err, f)
		assert.Positive(t, info.Size(), f)
	}

	data, err := os.ReadFile(filepath.Join(out, "laporan_oss_2024-Q1.json"))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.ID, decoded["id"])
}

func TestExporter_UnsupportedFormat(t *testing.T) {
	exp := New(&config.Paths{OutputDir: t.TempDir()}, nil)
	_, err := exp.Export(testReport(t), []domain.ReportFormat{"pdf"})
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testReport(t)))
	assert.Contains(t, buf.String(), `"period_name": "TW I 2024"`)
	assert.Contains(t, buf.String(), `"registration.by_month"`)
}
