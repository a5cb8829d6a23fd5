package storage

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// DB wraps the local sqlite database used for the offline row store and the
// submission progress journal.
type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("Open(): failed to open database: %w", err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY under the upload fan-out
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open(): failed to connect to database: %w", err)
	}

	createSheetsTable := `
	CREATE TABLE IF NOT EXISTS sheets (
			"title" TEXT PRIMARY KEY,
			"created_at" DATETIME NOT NULL
	);`
	createRowsTable := `
	CREATE TABLE IF NOT EXISTS sheet_rows (
			"sheet" TEXT NOT NULL,
			"row_num" INTEGER NOT NULL,
			"cells" TEXT NOT NULL,
			PRIMARY KEY(sheet, row_num),
			FOREIGN KEY(sheet) REFERENCES sheets(title)
	);`
	createProgressTable := `
	CREATE TABLE IF NOT EXISTS submission_progress (
			"inspection_id" TEXT PRIMARY KEY,
			"stage" TEXT NOT NULL,
			"detail" TEXT,
			"updated_at" DATETIME NOT NULL
	);`

	for _, stmt := range []string{createSheetsTable, createRowsTable, createProgressTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("Open(): failed to create table: %w", err)
		}
	}
	log.Printf("Open(): Init and create tables successfully! (%s)", path)

	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	return d.sql.Close()
}
