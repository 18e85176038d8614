package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. The item collection is stored as a
// single serialized value in the storage table, keyed by a fixed constant,
// so previously stored data stays readable across versions.
const schema = `
CREATE TABLE IF NOT EXISTS storage (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
