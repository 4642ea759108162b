// Package store is the local SQLite state behind the panel: recent
// searches, pinned entities, and a journal of mutations issued from this
// machine. Everything here is a convenience cache; the server never sees it
// and losing the file loses nothing of record.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"

	"shopctl/internal/logging"
)

// MaxRecentSearches caps the per-scope recent search list.
const MaxRecentSearches = 10

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open initializes the database at path, creating directories and tables
// as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	s := &Store{db: db}
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			logging.StoreDebug("%s failed: %v", pragma, err)
		}
	}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.Store("opened %s", path)
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recent_searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scope TEXT NOT NULL,
		query TEXT NOT NULL,
		searched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(scope, query)
	);
	CREATE INDEX IF NOT EXISTS idx_recent_scope ON recent_searches(scope);

	CREATE TABLE IF NOT EXISTS pinned (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scope TEXT NOT NULL,
		entity_id INTEGER NOT NULL,
		label TEXT NOT NULL,
		pinned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(scope, entity_id)
	);
	CREATE INDEX IF NOT EXISTS idx_pinned_scope ON pinned(scope);

	CREATE TABLE IF NOT EXISTS mutation_journal (
		id TEXT PRIMARY KEY,
		scope TEXT NOT NULL,
		action TEXT NOT NULL,
		entity_id INTEGER,
		detail TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_journal_scope ON mutation_journal(scope);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("store: initialize schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RememberSearch records a submitted search for a scope (e.g. "products"),
// bumping it to the top if already present and trimming the list to
// MaxRecentSearches.
func (s *Store) RememberSearch(scope, query string) error {
	if query == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO recent_searches (scope, query, searched_at) VALUES (?, ?, ?)
		ON CONFLICT(scope, query) DO UPDATE SET searched_at = excluded.searched_at`,
		scope, query, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: remember search: %w", err)
	}
	_, err = s.db.Exec(`
		DELETE FROM recent_searches WHERE scope = ? AND id NOT IN (
			SELECT id FROM recent_searches WHERE scope = ?
			ORDER BY searched_at DESC LIMIT ?)`,
		scope, scope, MaxRecentSearches)
	if err != nil {
		return fmt.Errorf("store: trim searches: %w", err)
	}
	return nil
}

// RecentSearches returns a scope's recent searches, newest first.
func (s *Store) RecentSearches(scope string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT query FROM recent_searches WHERE scope = ?
		ORDER BY searched_at DESC LIMIT ?`, scope, MaxRecentSearches)
	if err != nil {
		return nil, fmt.Errorf("store: recent searches: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Pin marks an entity for quick access. Pinning again refreshes the label.
func (s *Store) Pin(scope string, entityID int64, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO pinned (scope, entity_id, label, pinned_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, entity_id) DO UPDATE SET label = excluded.label, pinned_at = excluded.pinned_at`,
		scope, entityID, label, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: pin: %w", err)
	}
	return nil
}

// Unpin removes a pin. Unpinning something not pinned is a no-op.
func (s *Store) Unpin(scope string, entityID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM pinned WHERE scope = ? AND entity_id = ?`, scope, entityID); err != nil {
		return fmt.Errorf("store: unpin: %w", err)
	}
	return nil
}

// Pinned is one pinned entity.
type Pinned struct {
	EntityID int64
	Label    string
	PinnedAt time.Time
}

// PinnedIn returns a scope's pins, newest first.
func (s *Store) PinnedIn(scope string) ([]Pinned, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT entity_id, label, pinned_at FROM pinned
		WHERE scope = ? ORDER BY pinned_at DESC`, scope)
	if err != nil {
		return nil, fmt.Errorf("store: pinned: %w", err)
	}
	defer rows.Close()

	var out []Pinned
	for rows.Next() {
		var p Pinned
		if err := rows.Scan(&p.EntityID, &p.Label, &p.PinnedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// JournalEntry is one recorded mutation.
type JournalEntry struct {
	ID        string
	Scope     string
	Action    string
	EntityID  int64
	Detail    string
	CreatedAt time.Time
}

// Journal records a mutation issued from this machine, for the activity
// view. Failures are logged and swallowed: journalling must never block
// the mutation it describes.
func (s *Store) Journal(scope, action string, entityID int64, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO mutation_journal (id, scope, action, entity_id, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), scope, action, entityID, detail, time.Now().UTC())
	if err != nil {
		logging.Get(logging.CategoryStore).Warn("journal write failed: %v", err)
	}
}

// RecentMutations returns the latest journal entries across all scopes.
func (s *Store) RecentMutations(limit int) ([]JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, scope, action, COALESCE(entity_id, 0), COALESCE(detail, ''), created_at
		FROM mutation_journal ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent mutations: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.Scope, &e.Action, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
