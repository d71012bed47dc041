// Package results persists statistics runs in a sqlite database as
// gob-encoded blobs keyed by run name.
package results

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"sync"
	"time"

	"github.com/vancomm/mastermind-solver/internal/distribution"
)

// Run is one recorded sweep of a solver over a set of secrets.
type Run struct {
	Places       int
	Colors       int
	Strategy     string
	Rule         string
	Pool         string
	Secrets      int
	Elapsed      time.Duration
	CreatedAt    time.Time
	Distribution distribution.Distribution
}

type Store struct {
	mu    sync.Mutex
	table string
	db    *sql.DB
}

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("value not found")
)

func isLetters(s string) bool {
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// NewStore creates the backing table if needed. table may only contain
// upper- or lowercase Latin letters (it is spliced into SQL directly).
func NewStore(db *sql.DB, table string) (*Store, error) {
	if table == "" || !isLetters(table) {
		return nil, ErrBadName
	}
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + table + ` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, err
	}
	return &Store{table: table, db: db}, nil
}

// Get decodes the value stored under key into value, which must be a
// pointer. A nil value discards the stored data. Missing keys yield
// ErrNotFound.
func (s *Store) Get(key string, value any) error {
	var v []byte
	if err := s.db.QueryRow(
		`SELECT value FROM `+s.table+` WHERE key = ?;`,
		key).Scan(&v); err == sql.ErrNoRows {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	return gob.NewDecoder(bytes.NewReader(v)).Decode(value)
}

// Set inserts a new key-value pair or replaces an existing one.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO `+s.table+` (key, value)
VALUES(?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

// Delete removes key without checking whether it existed.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.table+` WHERE key = ?;`, key)
	return err
}

// Count reports the number of stored keys.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT count(*) FROM ` + s.table + `;`).Scan(&count)
	return count, err
}

// Keys lists every stored key in no particular order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM ` + s.table + `;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
