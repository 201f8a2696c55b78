package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched with errors.Is against the typed dataset errors below
var (
	ErrSchemaMismatch          = errors.New("schema mismatch")
	ErrDateParse               = errors.New("date parse error")
	ErrSheetSelectionAmbiguous = errors.New("sheet selection ambiguous")
)

// SchemaMismatchError reports a required canonical field without a matching
// column. It is fatal for the table it was raised on.
type SchemaMismatchError struct {
	Kind  string
	Field string
	Sheet string
	// Headers lists what the sheet did contain, to help the user pick another file
	Headers []string
}

func (e *SchemaMismatchError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%s dataset: required field %s has no matching column", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s dataset: required field %s has no matching column in sheet %q", e.Kind, e.Field, e.Sheet)
}

// Is lets errors.Is(err, ErrSchemaMismatch) match
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// Hint returns a user-facing sentence listing the available headers
func (e *SchemaMismatchError) Hint() string {
	if len(e.Headers) == 0 {
		return "the sheet has no header row"
	}
	return "available columns: " + strings.Join(e.Headers, ", ")
}

// DateParseError reports a single unparseable date cell
type DateParseError struct {
	Value  string
	Reason string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q: %s", e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrDateParse) match
func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}

// SheetSelectionAmbiguousError is a soft warning: no sheet carried a keyword
// of the dataset, so the first sheet was used.
type SheetSelectionAmbiguousError struct {
	Kind     string
	Fallback string
	Sheets   []string
}

func (e *SheetSelectionAmbiguousError) Error() string {
	return fmt.Sprintf("%s dataset: no sheet matched dataset keywords among %v, fell back to %q", e.Kind, e.Sheets, e.Fallback)
}

// Is lets errors.Is(err, ErrSheetSelectionAmbiguous) match
func (e *SheetSelectionAmbiguousError) Is(target error) bool {
	return target == ErrSheetSelectionAmbiguous
}
