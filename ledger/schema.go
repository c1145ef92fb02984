package ledger

import (
	"database/sql"
	"time"
)

const schemaVersion = 1

// nowUTC returns the current UTC time formatted as RFC3339 for consistent
// datetime storage.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func createTables(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS ledger_metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL,
			source_size INTEGER NOT NULL,
			source_mtime TEXT NOT NULL,
			output_path TEXT NOT NULL,
			tool TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			UNIQUE(source_path, source_size, source_mtime, tool)
		)
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source_path)`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO ledger_metadata (key, value, updated_at)
		VALUES ('schema_version', ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, schemaVersion, nowUTC())
	if err != nil {
		return err
	}

	return tx.Commit()
}
