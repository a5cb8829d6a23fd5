package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a parsed A1-notation range such as "Inspections!A:G" or
// "Compliance!C5:E5". Columns are 0-based, rows are 1-based and 0 means
// unbounded on that side.
type Range struct {
	Sheet    string
	StartCol int
	EndCol   int // -1 when the range covers every column
	StartRow int
	EndRow   int
}

// ParseRange parses an A1-notation range spec.
func ParseRange(spec string) (Range, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Range{}, fmt.Errorf("%w: empty range", ErrInvalidRange)
	}

	sheet, ref := spec, ""
	if i := strings.LastIndex(spec, "!"); i >= 0 {
		sheet, ref = spec[:i], spec[i+1:]
	}
	sheet, err := unquoteSheet(sheet)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, spec, err)
	}

	r := Range{Sheet: sheet, EndCol: -1}
	if ref == "" {
		return r, nil
	}

	start, end, hasEnd := strings.Cut(ref, ":")
	startCol, startRow, err := parseCell(start)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, spec, err)
	}
	endCol, endRow := startCol, startRow
	if hasEnd {
		if endCol, endRow, err = parseCell(end); err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, spec, err)
		}
	}

	if endCol < startCol {
		return Range{}, fmt.Errorf("%w: %q: bad column span", ErrInvalidRange, spec)
	}
	if endRow != 0 && endRow < startRow {
		return Range{}, fmt.Errorf("%w: %q: bad row span", ErrInvalidRange, spec)
	}

	r.StartCol, r.EndCol = startCol, endCol
	r.StartRow, r.EndRow = startRow, endRow
	return r, nil
}

// MustParseRange is ParseRange for compile-time constant specs.
func MustParseRange(spec string) Range {
	r, err := ParseRange(spec)
	if err != nil {
		panic(err)
	}
	return r
}

// String renders the range back to A1 notation.
func (r Range) String() string {
	sheet := quoteSheet(r.Sheet)
	if r.EndCol < 0 {
		return sheet
	}

	start := cellName(r.StartCol, r.StartRow)
	end := cellName(r.EndCol, r.EndRow)
	if start == end && r.StartRow > 0 {
		return sheet + "!" + start
	}
	return sheet + "!" + start + ":" + end
}

// Width is the number of columns covered, or -1 when unbounded.
func (r Range) Width() int {
	if r.EndCol < 0 {
		return -1
	}
	return r.EndCol - r.StartCol + 1
}

// FirstRow is the 1-based row number the range starts at.
func (r Range) FirstRow() int {
	if r.StartRow < 1 {
		return 1
	}
	return r.StartRow
}

// Row narrows r to a single row.
func (r Range) Row(n int) Range {
	r.StartRow, r.EndRow = n, n
	return r
}

// ColumnName converts a 0-based column index to letters (0 -> A, 26 -> AA).
func ColumnName(col int) string {
	name := ""
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}
	return name
}

func cellName(col, row int) string {
	name := ColumnName(col)
	if row > 0 {
		name += strconv.Itoa(row)
	}
	return name
}

// parseCell returns row 0 when the ref has no digits.
func parseCell(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}

	i := 0
	col = 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A'+1)
		i++
	}
	col--
	if col < 0 {
		return 0, 0, fmt.Errorf("missing column in %q", ref)
	}

	if i < len(ref) {
		row, err = strconv.Atoi(ref[i:])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("bad row in %q", ref)
		}
	}
	return col, row, nil
}

func unquoteSheet(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "'") {
		if len(name) < 2 || !strings.HasSuffix(name, "'") {
			return "", fmt.Errorf("unterminated sheet name")
		}
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	if name == "" {
		return "", fmt.Errorf("empty sheet name")
	}
	return name, nil
}

func quoteSheet(name string) string {
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}
