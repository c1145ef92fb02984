// Package ledger records completed media conversions so the converter tools
// can skip sources that were already processed. Identity is source path plus
// size and mtime: touch or replace the source and it converts again.
package ledger

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Ledger is a sqlite-backed conversion record.
type Ledger struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex

	stats *Stats
}

type Stats struct {
	mu         sync.Mutex
	Hits       int64
	Misses     int64
	Errors     int64
	LastAccess time.Time
}

func (s *Stats) recordHit() {
	s.mu.Lock()
	s.Hits++
	s.LastAccess = time.Now()
	s.mu.Unlock()
}

func (s *Stats) recordMiss() {
	s.mu.Lock()
	s.Misses++
	s.LastAccess = time.Now()
	s.mu.Unlock()
}

func (s *Stats) recordError() {
	s.mu.Lock()
	s.Errors++
	s.mu.Unlock()
}

// Snapshot returns a copy of the counters.
func (s *Stats) Snapshot() (hits, misses, errors int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Hits, s.Misses, s.Errors
}

// Open opens (creating if needed) the ledger database at dbPath.
func Open(dbPath string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, newLedgerError("open", "", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, newLedgerError("open", "", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, newLedgerError("open", "", err)
	}

	return &Ledger{
		db:     db,
		dbPath: dbPath,
		stats:  &Stats{},
	}, nil
}

func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// Stats exposes the hit/miss counters.
func (l *Ledger) Stats() *Stats {
	return l.stats
}

// sourceIdentity stats the source and returns the identity columns.
func sourceIdentity(sourcePath string) (size int64, mtime string, err error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return 0, "", err
	}
	return info.Size(), info.ModTime().UTC().Format(time.RFC3339), nil
}

// Seen reports whether the current version of sourcePath was already
// converted by tool, and the recorded output path when it was.
func (l *Ledger) Seen(sourcePath, tool string) (string, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.db == nil {
		return "", false, newLedgerError("seen", sourcePath, ErrNotOpen)
	}

	size, mtime, err := sourceIdentity(sourcePath)
	if err != nil {
		l.stats.recordError()
		return "", false, newLedgerError("seen", sourcePath, err)
	}

	var outputPath string
	err = l.db.QueryRow(`
		SELECT output_path FROM conversions
		WHERE source_path = ? AND source_size = ? AND source_mtime = ? AND tool = ?
	`, sourcePath, size, mtime, tool).Scan(&outputPath)

	switch {
	case err == sql.ErrNoRows:
		l.stats.recordMiss()
		return "", false, nil
	case err != nil:
		l.stats.recordError()
		return "", false, newLedgerError("seen", sourcePath, err)
	}

	l.stats.recordHit()
	return outputPath, true, nil
}

// Record stores a completed conversion.
func (l *Ledger) Record(sourcePath, outputPath, tool string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return newLedgerError("record", sourcePath, ErrNotOpen)
	}

	size, mtime, err := sourceIdentity(sourcePath)
	if err != nil {
		l.stats.recordError()
		return newLedgerError("record", sourcePath, err)
	}

	_, err = l.db.Exec(`
		INSERT INTO conversions (source_path, source_size, source_mtime, output_path, tool, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_path, source_size, source_mtime, tool)
		DO UPDATE SET output_path = excluded.output_path, completed_at = excluded.completed_at
	`, sourcePath, size, mtime, outputPath, tool, nowUTC())
	if err != nil {
		l.stats.recordError()
		return newLedgerError("record", sourcePath, err)
	}
	return nil
}

// Prune drops entries whose source or output no longer exists and returns
// how many were removed.
func (l *Ledger) Prune() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return 0, newLedgerError("prune", "", ErrNotOpen)
	}

	rows, err := l.db.Query(`SELECT id, source_path, output_path FROM conversions`)
	if err != nil {
		return 0, newLedgerError("prune", "", err)
	}
	defer rows.Close()

	var stale []int64
	for rows.Next() {
		var id int64
		var source, output string
		if err := rows.Scan(&id, &source, &output); err != nil {
			return 0, newLedgerError("prune", "", err)
		}
		if !fileExists(source) || !fileExists(output) {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, newLedgerError("prune", "", err)
	}

	for _, id := range stale {
		if _, err := l.db.Exec(`DELETE FROM conversions WHERE id = ?`, id); err != nil {
			return 0, newLedgerError("prune", "", err)
		}
	}
	return len(stale), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
