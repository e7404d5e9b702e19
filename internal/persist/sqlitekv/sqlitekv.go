// Package sqlitekv implements persist.KVStore over a single-table
// sqlite schema, grounded on original_source/src/persist.c's
// meta/sectors/systems/probes tables and a sql.Open + WAL pragma +
// schema-on-open habit. mattn/go-sqlite3
// (cgo) is the primary driver; modernc.org/sqlite (pure Go) backs
// in-memory stores for tests and cgo-free builds.
package sqlitekv

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/vitadek/universe/internal/persist"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);
`

// Store is a persist.KVStore backed by a single "kv" table: one row
// per key, ordered scans via a SQL prefix LIKE + ORDER BY key.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a cgo sqlite3 database file at path.
func Open(path string) (*Store, error) {
	return open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
}

// OpenPure opens a pure-Go modernc.org/sqlite database, used for
// ":memory:" stores in tests and cgo-free environments.
func OpenPure(path string) (*Store, error) {
	return open("sqlite", path)
}

func open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: open: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitekv: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (s *Store) ScanPrefix(prefix string) (map[string][]byte, error) {
	rows, err := s.db.Query(`SELECT key, value FROM kv WHERE key LIKE ? ORDER BY key ASC`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var k string
		var v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (s *Store) Begin() (persist.Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx}, nil
}

// sqlTx implements persist.Tx over a database/sql transaction.
type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Set(key string, value []byte) error {
	_, err := t.tx.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (t *sqlTx) Delete(key string) error {
	_, err := t.tx.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (t *sqlTx) Commit() error   { return t.tx.Commit() }
func (t *sqlTx) Rollback() error { return t.tx.Rollback() }
