// Package command implements the module-command subsystem: a per-module
// LocalService, a CLI-side LocalRequestor, and the persistent process
// table both rely on.
package command

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
	_ "modernc.org/sqlite"
)

// ProcessTable is the single-row-per-module persistent store:
// `(module TEXT PRIMARY KEY, ipc_file TEXT UNIQUE,
// process_identifier INT64, status INT)`. Opened read-write by the
// module itself, read-only by discovery clients.
//
// Every method serializes on mu and the handle is capped at one open
// connection, so within a process all access to the table -- reads
// included -- is strictly ordered; modernc.org/sqlite otherwise raises
// SQLITE_BUSY under concurrent writers.
type ProcessTable struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenProcessTable opens (creating if absent) the sqlite-backed process
// table at path.
func OpenProcessTable(path string) (*ProcessTable, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening process table")
	}
	db.SetMaxOpenConns(1)
	const schema = `
CREATE TABLE IF NOT EXISTS process_table (
	module             TEXT PRIMARY KEY,
	ipc_file           TEXT UNIQUE,
	process_identifier INTEGER,
	status             INTEGER
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating process table schema")
	}
	return &ProcessTable{db: db}, nil
}

// Upsert stores (or replaces) details's row, keyed by module name.
func (t *ProcessTable) Upsert(details message.LocalModuleDetails) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	const stmt = `
INSERT INTO process_table (module, ipc_file, process_identifier, status)
VALUES (?, ?, ?, ?)
ON CONFLICT(module) DO UPDATE SET
	ipc_file = excluded.ipc_file,
	process_identifier = excluded.process_identifier,
	status = excluded.status`
	_, err := t.db.Exec(stmt, details.ModuleName, details.IPCFilePath, details.ProcessIdentifier, details.ApplicationStatus)
	return errors.Wrap(err, "upserting process table row")
}

// Delete removes moduleName's row, per LocalService's stop() contract.
func (t *ProcessTable) Delete(moduleName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.db.Exec(`DELETE FROM process_table WHERE module = ?`, moduleName)
	return errors.Wrap(err, "deleting process table row")
}

// Get returns moduleName's row.
func (t *ProcessTable) Get(moduleName string) (message.LocalModuleDetails, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row := t.db.QueryRow(`SELECT module, ipc_file, process_identifier, status FROM process_table WHERE module = ?`, moduleName)
	var details message.LocalModuleDetails
	if err := row.Scan(&details.ModuleName, &details.IPCFilePath, &details.ProcessIdentifier, &details.ApplicationStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return message.LocalModuleDetails{}, ErrModuleNotFound
		}
		return message.LocalModuleDetails{}, errors.Wrap(err, "reading process table row")
	}
	return details, nil
}

// ErrModuleNotFound is returned by Get for an unknown module.
var ErrModuleNotFound = errors.New("module not found in process table")

// Available returns every row currently in the table. This may include
// crashed modules whose row was never deleted.
func (t *ProcessTable) Available() ([]message.LocalModuleDetails, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.db.Query(`SELECT module, ipc_file, process_identifier, status FROM process_table ORDER BY module`)
	if err != nil {
		return nil, errors.Wrap(err, "listing process table")
	}
	defer rows.Close()

	var out []message.LocalModuleDetails
	for rows.Next() {
		var details message.LocalModuleDetails
		if err := rows.Scan(&details.ModuleName, &details.IPCFilePath, &details.ProcessIdentifier, &details.ApplicationStatus); err != nil {
			return nil, errors.Wrap(err, "scanning process table row")
		}
		out = append(out, details)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (t *ProcessTable) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.Close()
}
