// Package storage persists conversation transcripts. Recording is
// optional; when disabled the agent runs entirely in memory.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Turn is one recorded question and answer.
type Turn struct {
	ID        int64
	SessionID string
	Query     string
	Intent    string
	Response  string
	LatencyMS int64
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens the transcript database under dataDir and ensures the
// turns table exists.
func Open(dataDir string) (*Store, error) {
	db, err := openDB(filepath.Join(dataDir, "agent.db"))
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initTable(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// openDB opens the sqlite file with WAL journaling and a busy timeout
// suitable for a single-process CLI.
func openDB(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	// _loc=Local keeps timestamps in the local timezone.
	db, err := sql.Open("sqlite3", dbPath+"?_loc=Local")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}
	return db, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		query TEXT NOT NULL,
		intent TEXT NOT NULL,
		response TEXT,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create turns table: %w", err)
	}
	return nil
}

// SaveTurn records one completed exchange.
func (s *Store) SaveTurn(sessionID, query, intent, response string, latency time.Duration) error {
	_, err := s.db.Exec(`
		INSERT INTO turns (session_id, query, intent, response, latency_ms)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, query, intent, response, latency.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// RecentTurns returns the newest turns of a session, oldest first.
func (s *Store) RecentTurns(sessionID string, limit int) ([]Turn, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, query, intent, response, latency_ms, created_at
		FROM turns WHERE session_id = ?
		ORDER BY id DESC LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Query, &t.Intent, &t.Response, &t.LatencyMS, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, rows.Err()
}
