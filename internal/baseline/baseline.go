// Package baseline persists finding fingerprints between runs so previously
// accepted findings can be hidden from later scans.
package baseline

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rhizome-lab/moss/internal/engine"
)

// Store wraps a SQLite database of accepted finding fingerprints.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS findings (
	fingerprint TEXT PRIMARY KEY,
	rule_id     TEXT NOT NULL,
	rel_path    TEXT NOT NULL,
	first_seen  TIMESTAMP NOT NULL
);`

// Open opens or creates a baseline database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open baseline: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init baseline schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Has reports whether a fingerprint is already recorded.
func (s *Store) Has(fingerprint string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM findings WHERE fingerprint = ?`, fingerprint).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("baseline lookup: %w", err)
	}
	return true, nil
}

// Filter returns the findings whose fingerprint is not yet recorded,
// preserving order.
func (s *Store) Filter(findings []engine.Finding) ([]engine.Finding, error) {
	out := make([]engine.Finding, 0, len(findings))
	for _, f := range findings {
		known, err := s.Has(f.Fingerprint())
		if err != nil {
			return nil, err
		}
		if !known {
			out = append(out, f)
		}
	}
	return out, nil
}

// Update records every finding's fingerprint. Already-recorded fingerprints
// keep their original first_seen.
func (s *Store) Update(findings []engine.Finding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("baseline update: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO findings (fingerprint, rule_id, rel_path, first_seen) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("baseline update: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, f := range findings {
		if _, err := stmt.Exec(f.Fingerprint(), f.RuleID, f.RelPath, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("baseline insert: %w", err)
		}
	}
	return tx.Commit()
}

// Count returns the number of recorded fingerprints.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM findings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("baseline count: %w", err)
	}
	return n, nil
}
