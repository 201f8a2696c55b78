package workbook

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Built-in number formats that render dates
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// styleCache remembers which style IDs format numbers as dates
type styleCache struct {
	f     *excelize.File
	dates map[int]bool
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, dates: make(map[int]bool)}
}

func (c *styleCache) isDate(sheet, cell string) bool {
	id, err := c.f.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return false
	}
	if v, ok := c.dates[id]; ok {
		return v
	}

	v := false
	if style, err := c.f.GetStyle(id); err == nil && style != nil {
		v = builtinDateFormats[style.NumFmt]
		if !v && style.CustomNumFmt != nil {
			v = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	c.dates[id] = v
	return v
}

// isDateFormatCode reports whether a custom format code shows a day or a
// year. A lone "m" may be minutes and is not enough. Quoted literals, escapes
// and bracketed sections are skipped.
func isDateFormatCode(code string) bool {
	code = strings.ToLower(code)
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '\\':
			i++
		case ch == '[':
			inBracket = true
		case ch == ']':
			inBracket = false
		case inBracket:
		case ch == 'd' || ch == 'y':
			return true
		}
	}
	return false
}
