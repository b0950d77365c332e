// Package counter implements the incrementer service: a sqlite-backed
// monotonic counter store wrapped in a service.ProxyService.
package counter

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Row is one counter item's persisted state Counter
// Store: `(value: i64, increment: i32, initial_value: i64)`.
type Row struct {
	Item         string
	Value        int64
	Increment    int32
	InitialValue int64
}

// Store is the sqlite-backed counter table keyed by item_name.
//
// mu serializes every method, and the underlying handle is capped at one
// open connection, so within a process GetNextValue's read-modify-write
// is never interleaved with another goroutine's; modernc.org/sqlite has
// no busy-wait retry and otherwise fails concurrent writers with
// SQLITE_BUSY.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenStore opens (creating if absent) the sqlite-backed counter store
// at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening counter store")
	}
	db.SetMaxOpenConns(1)
	const schema = `
CREATE TABLE IF NOT EXISTS counter_table (
	item          TEXT UNIQUE,
	value         INTEGER,
	increment     INTEGER,
	initial_value INTEGER
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating counter store schema")
	}
	return &Store{db: db}, nil
}

// GetNextValue increments item's value and returns the new value. A
// missing item is auto-created at initial_value=0, increment=1 before
// incrementing.
func (s *Store) GetNextValue(item string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
INSERT INTO counter_table (item, value, increment, initial_value)
VALUES (?, 0, 1, 0)
ON CONFLICT(item) DO NOTHING`, item); err != nil {
		return 0, errors.Wrap(err, "auto-creating counter item")
	}

	if _, err := tx.Exec(`UPDATE counter_table SET value = value + increment WHERE item = ?`, item); err != nil {
		return 0, errors.Wrap(err, "incrementing counter item")
	}

	var value int64
	if err := tx.QueryRow(`SELECT value FROM counter_table WHERE item = ?`, item).Scan(&value); err != nil {
		return 0, errors.Wrap(err, "reading incremented value")
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing transaction")
	}
	return value, nil
}

// ErrUnknownItem is returned by GetCurrentValue and Reset for an item
// never created by GetNextValue.
var ErrUnknownItem = errors.New("unknown counter item")

// GetCurrentValue returns item's current value without mutating it.
func (s *Store) GetCurrentValue(item string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCurrentValueLocked(item)
}

// getCurrentValueLocked is GetCurrentValue's body, callable by methods
// that already hold mu.
func (s *Store) getCurrentValueLocked(item string) (int64, error) {
	var value int64
	err := s.db.QueryRow(`SELECT value FROM counter_table WHERE item = ?`, item).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnknownItem
	}
	if err != nil {
		return 0, errors.Wrap(err, "reading counter value")
	}
	return value, nil
}

// Reset sets item's value back to its initial_value.
func (s *Store) Reset(item string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`UPDATE counter_table SET value = initial_value WHERE item = ?`, item)
	if err != nil {
		return 0, errors.Wrap(err, "resetting counter item")
	}
	return s.getCurrentValueLocked(item)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
