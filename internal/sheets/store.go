/**
* Name:        store.go
* Description: Row Store adapter over a tabular backend (Google Sheets or sqlite)
* Workflow:    parse range, call backend, map header/data rows to records
 */

package sheets

import (
	"context"
	"fmt"
	"log"
)

// Record maps header names to cell values for one data row.
type Record map[string]string

// AppendResult describes where an appended row landed.
type AppendResult struct {
	UpdatedRange string `json:"updated_range"`
	UpdatedRows  int64  `json:"updated_rows"`
}

// Backend is the raw tabular store. Values are returned the way the Sheets
// API does: trailing empty cells and trailing empty rows are trimmed.
type Backend interface {
	Get(ctx context.Context, r Range) ([][]string, error)
	Append(ctx context.Context, r Range, values []string) (*AppendResult, error)
	Update(ctx context.Context, r Range, values []string) error
	SheetTitles(ctx context.Context) ([]string, error)
	AddSheet(ctx context.Context, title string) error
}

// Store is the Row Store adapter. It is built once at startup and shared by
// every request.
type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// ReadValues returns the raw rows of rangeSpec. An empty range is not an error.
func (s *Store) ReadValues(ctx context.Context, rangeSpec string) ([][]string, error) {
	r, err := ParseRange(rangeSpec)
	if err != nil {
		return nil, wrap("read", rangeSpec, err)
	}
	values, err := s.backend.Get(ctx, r)
	if err != nil {
		log.Printf("Store.ReadValues(): failed to read %s: %v", rangeSpec, err)
		return nil, wrap("read", rangeSpec, err)
	}
	return values, nil
}

// ReadRange treats the first row as header and returns one Record per data row.
func (s *Store) ReadRange(ctx context.Context, rangeSpec string) ([]Record, error) {
	values, err := s.ReadValues(ctx, rangeSpec)
	if err != nil {
		return nil, err
	}
	return RecordsFromValues(values), nil
}

// AppendRow appends a single row after the last row of the range's sheet.
func (s *Store) AppendRow(ctx context.Context, rangeSpec string, values []string) (*AppendResult, error) {
	r, err := ParseRange(rangeSpec)
	if err != nil {
		return nil, wrap("append", rangeSpec, err)
	}
	res, err := s.backend.Append(ctx, r, values)
	if err != nil {
		log.Printf("Store.AppendRow(): failed to append to %s: %v", rangeSpec, err)
		return nil, wrap("append", rangeSpec, err)
	}
	return res, nil
}

// UpdateRow overwrites the cells of rangeSpec with values.
func (s *Store) UpdateRow(ctx context.Context, rangeSpec string, values []string) error {
	r, err := ParseRange(rangeSpec)
	if err != nil {
		return wrap("update", rangeSpec, err)
	}
	if r.StartRow < 1 {
		return wrap("update", rangeSpec, fmt.Errorf("%w: update needs an explicit row", ErrInvalidRange))
	}
	if err := s.backend.Update(ctx, r, values); err != nil {
		log.Printf("Store.UpdateRow(): failed to update %s: %v", rangeSpec, err)
		return wrap("update", rangeSpec, err)
	}
	return nil
}

// FindRow scans every data row of rangeSpec (the first row is the header) and
// returns the 1-based sheet row number of the first row whose leading cells
// equal match. The scan is linear in the number of rows, which is fine for
// sheets of a few thousand rows.
func (s *Store) FindRow(ctx context.Context, rangeSpec string, match ...string) (int, error) {
	r, err := ParseRange(rangeSpec)
	if err != nil {
		return 0, wrap("find", rangeSpec, err)
	}
	values, err := s.ReadValues(ctx, rangeSpec)
	if err != nil {
		return 0, err
	}

	found := 0
	for i := 1; i < len(values); i++ {
		if !hasPrefix(values[i], match) {
			continue
		}
		if found != 0 {
			log.Printf("Store.FindRow(): duplicate match %v at row %d in %s, keeping row %d", match, r.FirstRow()+i, rangeSpec, found)
			continue
		}
		found = r.FirstRow() + i
	}
	if found == 0 {
		return 0, wrap("find", rangeSpec, ErrRowNotFound)
	}
	return found, nil
}

// UpdateMatchingRow locates the first data row of rangeSpec whose leading
// cells equal match and overwrites the cells starting at column fromCol with
// values. It returns the updated sheet row number.
func (s *Store) UpdateMatchingRow(ctx context.Context, rangeSpec string, match []string, fromCol int, values []string) (int, error) {
	r, err := ParseRange(rangeSpec)
	if err != nil {
		return 0, wrap("update", rangeSpec, err)
	}
	row, err := s.FindRow(ctx, rangeSpec, match...)
	if err != nil {
		return 0, err
	}

	target := Range{
		Sheet:    r.Sheet,
		StartCol: fromCol,
		EndCol:   fromCol + len(values) - 1,
	}.Row(row)
	if err := s.UpdateRow(ctx, target.String(), values); err != nil {
		return 0, err
	}
	return row, nil
}

// EnsureSheet creates the sheet tab when missing and writes headers when the
// sheet has no header row yet. It reports whether the headers were written.
func (s *Store) EnsureSheet(ctx context.Context, title string, headers []string) (bool, error) {
	titles, err := s.backend.SheetTitles(ctx)
	if err != nil {
		return false, wrap("ensure", title, err)
	}

	exists := false
	for _, t := range titles {
		if t == title {
			exists = true
			break
		}
	}
	if !exists {
		log.Printf("Store.EnsureSheet(): creating sheet %s", title)
		if err := s.backend.AddSheet(ctx, title); err != nil {
			return false, wrap("ensure", title, err)
		}
	}

	headerRange := Range{Sheet: title, StartCol: 0, EndCol: max(len(headers), 1) - 1}.Row(1)
	existing, err := s.ReadValues(ctx, headerRange.String())
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if _, err := s.AppendRow(ctx, Range{Sheet: title, StartCol: 0, EndCol: 0}.Row(1).String(), headers); err != nil {
		return false, err
	}
	return true, nil
}

// RecordsFromValues zips the header row with every data row. Missing trailing
// cells map to "", cells beyond the header are dropped.
func RecordsFromValues(values [][]string) []Record {
	if len(values) == 0 {
		return []Record{}
	}
	headers := values[0]
	records := make([]Record, 0, len(values)-1)
	for _, row := range values[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

func hasPrefix(row, match []string) bool {
	if len(row) < len(match) {
		return false
	}
	for i, m := range match {
		if row[i] != m {
			return false
		}
	}
	return true
}
