// Package history persists gate decisions to a local sqlite database
// for the stats subcommand. Unlike the audit log it is queryable, and
// unlike the audit log it is not tamper-evident; the two are
// complementary.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Row is one recorded decision.
type Row struct {
	ID         string
	Timestamp  string
	ProjectDir string
	Command    string
	Allowed    bool
	Rule       string
	Reason     string
}

// Store is a sqlite-backed decision history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: wal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		ts TEXT NOT NULL,
		project_dir TEXT NOT NULL,
		command TEXT NOT NULL,
		allowed INTEGER NOT NULL,
		rule TEXT,
		reason TEXT
	)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_decisions_rule ON decisions(rule)`)
	return err
}

// Record inserts one decision.
func (s *Store) Record(projectDir, command string, allowed bool, rule, reason string) error {
	allowedInt := 0
	if allowed {
		allowedInt = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO decisions (id, ts, project_dir, command, allowed, rule, reason) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		time.Now().UTC().Format(time.RFC3339),
		projectDir, command, allowedInt, rule, reason,
	)
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	return nil
}

// RuleCounts returns the number of blocked decisions per rule class.
func (s *Store) RuleCounts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT rule, COUNT(*) FROM decisions WHERE allowed = 0 GROUP BY rule`)
	if err != nil {
		return nil, fmt.Errorf("history: rule counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var rule string
		var n int
		if err := rows.Scan(&rule, &n); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		counts[rule] = n
	}
	return counts, rows.Err()
}

// RecentBlocks returns the most recent blocked decisions, newest first.
func (s *Store) RecentBlocks(limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, ts, project_dir, command, allowed, rule, reason
		 FROM decisions WHERE allowed = 0 ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent blocks: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var allowed int
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.ProjectDir, &r.Command, &allowed, &r.Rule, &r.Reason); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		r.Allowed = allowed == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// Total returns the total number of recorded decisions.
func (s *Store) Total() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM decisions`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
