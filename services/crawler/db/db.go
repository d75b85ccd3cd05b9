package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// Open opens the ledger database at path and applies the schema. The
// schema only creates what is missing, so reopening an existing ledger
// is safe.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		os.MkdirAll(filepath.Dir(path), 0777)
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	database.SetMaxOpenConns(1)
	_, err = database.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	_, err = database.Exec(Schema)
	if err != nil {
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}
	return database, nil
}
