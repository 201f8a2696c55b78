package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaMismatchError(t *testing.T) {
	err := &SchemaMismatchError{
		Kind:    "project",
		Field:   "investment_amount",
		Sheet:   "PROYEK",
		Headers: []string{"ID Proyek", "Tanggal"},
	}

	assert.Equal(t, `project dataset: required field investment_amount has no matching column in sheet "PROYEK"`, err.Error())
	assert.Equal(t, "available columns: ID Proyek, Tanggal", err.Hint())
	assert.True(t, errors.Is(fmt.Errorf("load: %w", err), ErrSchemaMismatch))
	assert.False(t, errors.Is(err, ErrDateParse))

	empty := &SchemaMismatchError{Kind: "permit", Field: "issue_date"}
	assert.Equal(t, "permit dataset: required field issue_date has no matching column", empty.Error())
	assert.Equal(t, "the sheet has no header row", empty.Hint())
}

func TestDateParseError(t *testing.T) {
	err := &DateParseError{Value: "Maret 2025", Reason: "missing day"}

	assert.Equal(t, `cannot parse date "Maret 2025": missing day`, err.Error())
	assert.ErrorIs(t, err, ErrDateParse)
	assert.NotErrorIs(t, err, ErrSchemaMismatch)
}

func TestSheetSelectionAmbiguousError(t *testing.T) {
	err := &SheetSelectionAmbiguousError{Kind: "permit", Fallback: "Sheet1", Sheets: []string{"Sheet1", "Sheet2"}}

	assert.ErrorIs(t, err, ErrSheetSelectionAmbiguous)
	assert.Contains(t, err.Error(), `fell back to "Sheet1"`)
}
