package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"ossreport/pkg/contracts/domain"
)

// WriteJSON encodes the full report, buckets and comparison rows included
func WriteJSON(out io.Writer, r *domain.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
