package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"VroDaptar_InspectionBackend/internal/sheets"
)

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SheetBackend stores sheet rows in sqlite with the same A1 semantics as
// the Sheets API: row numbers are 1-based, trailing empty cells and rows are
// trimmed on read and appends land after the last row of the sheet.
type SheetBackend struct {
	db *DB
}

func NewSheetBackend(db *DB) *SheetBackend {
	return &SheetBackend{db: db}
}

func (b *SheetBackend) Get(ctx context.Context, r sheets.Range) ([][]string, error) {
	if err := requireSheet(ctx, b.db.sql, r.Sheet); err != nil {
		return nil, err
	}

	rows, err := b.db.sql.QueryContext(ctx, `
		SELECT row_num, cells
		FROM sheet_rows
		WHERE sheet = ? AND row_num >= ? AND (? = 0 OR row_num <= ?)
		ORDER BY row_num
	`, r.Sheet, r.FirstRow(), r.EndRow, r.EndRow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := [][]string{}
	next := r.FirstRow()
	for rows.Next() {
		var (
			num       int
			cellsJSON string
		)
		if err := rows.Scan(&num, &cellsJSON); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, fmt.Errorf("SheetBackend.Get(): corrupt row %s!%d: %w", r.Sheet, num, err)
		}
		for ; next < num; next++ {
			values = append(values, []string{})
		}
		values = append(values, sliceColumns(cells, r))
		next = num + 1
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for len(values) > 0 && len(values[len(values)-1]) == 0 {
		values = values[:len(values)-1]
	}
	return values, nil
}

func (b *SheetBackend) Append(ctx context.Context, r sheets.Range, values []string) (*sheets.AppendResult, error) {
	tx, err := b.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := requireSheet(ctx, tx, r.Sheet); err != nil {
		return nil, err
	}

	var last int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(row_num), 0) FROM sheet_rows WHERE sheet = ?`, r.Sheet).Scan(&last); err != nil {
		return nil, err
	}

	cells := append(make([]string, r.StartCol), values...)
	encoded, err := json.Marshal(cells)
	if err != nil {
		return nil, err
	}
	rowNum := last + 1
	if _, err := tx.ExecContext(ctx, `INSERT INTO sheet_rows(sheet, row_num, cells) VALUES(?, ?, ?)`, r.Sheet, rowNum, string(encoded)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	updated := sheets.Range{Sheet: r.Sheet, StartCol: r.StartCol, EndCol: r.StartCol + max(len(values), 1) - 1}.Row(rowNum)
	return &sheets.AppendResult{UpdatedRange: updated.String(), UpdatedRows: 1}, nil
}

func (b *SheetBackend) Update(ctx context.Context, r sheets.Range, values []string) error {
	if r.StartRow < 1 {
		return fmt.Errorf("%w: %s has no row", sheets.ErrInvalidRange, r)
	}

	tx, err := b.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireSheet(ctx, tx, r.Sheet); err != nil {
		return err
	}

	var cells []string
	var cellsJSON string
	err = tx.QueryRowContext(ctx, `SELECT cells FROM sheet_rows WHERE sheet = ? AND row_num = ?`, r.Sheet, r.StartRow).Scan(&cellsJSON)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	default:
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return fmt.Errorf("SheetBackend.Update(): corrupt row %s!%d: %w", r.Sheet, r.StartRow, err)
		}
	}

	for len(cells) < r.StartCol+len(values) {
		cells = append(cells, "")
	}
	copy(cells[r.StartCol:], values)

	encoded, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sheet_rows(sheet, row_num, cells) VALUES(?, ?, ?)
		ON CONFLICT(sheet, row_num) DO UPDATE SET cells = excluded.cells
	`, r.Sheet, r.StartRow, string(encoded)); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *SheetBackend) SheetTitles(ctx context.Context) ([]string, error) {
	rows, err := b.db.sql.QueryContext(ctx, `SELECT title FROM sheets ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

func (b *SheetBackend) AddSheet(ctx context.Context, title string) error {
	_, err := b.db.sql.ExecContext(ctx, `INSERT INTO sheets(title, created_at) VALUES(?, ?)`, title, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func requireSheet(ctx context.Context, q queryer, title string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM sheets WHERE title = ?`, title).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", sheets.ErrSheetNotFound, title)
	}
	return err
}

func sliceColumns(cells []string, r sheets.Range) []string {
	end := len(cells)
	if r.EndCol >= 0 && r.EndCol+1 < end {
		end = r.EndCol + 1
	}
	if r.StartCol >= end {
		return []string{}
	}
	out := append([]string{}, cells[r.StartCol:end]...)
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
