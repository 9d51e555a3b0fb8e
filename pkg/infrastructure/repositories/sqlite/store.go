// Package sqlite persists the inventory catalog in a SQLite database using the
// pure-Go modernc.org/sqlite driver. Entities are stored as JSON documents
// keyed by id; a sequence column keeps insertion order for listing.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vsinha/aim/pkg/domain/repositories"
)

const (
	componentsTable = "components"
	inventoryTable  = "inventory"
	revisionsTable  = "revisions"
)

const schema = `
CREATE TABLE IF NOT EXISTS components (
	seq  INTEGER PRIMARY KEY AUTOINCREMENT,
	id   TEXT NOT NULL UNIQUE,
	body TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	component_id TEXT NOT NULL,
	body         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inventory_component ON inventory(component_id);

CREATE TABLE IF NOT EXISTS revisions (
	seq  INTEGER PRIMARY KEY AUTOINCREMENT,
	id   TEXT NOT NULL UNIQUE,
	body TEXT NOT NULL
);
`

// Store is a SQLite-backed repositories.Store
type Store struct {
	db    *sql.DB
	newID func() string
}

var _ repositories.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithIDGenerator overrides how ids are assigned to records inserted without one
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Open opens or creates the database at path and applies the schema
func Open(path string, opts ...Option) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers, which makes every
	// read-modify-write transaction atomic with respect to the others.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	s := &Store{db: db, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func exists(q querier, table, id string) (bool, error) {
	var n int
	err := q.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, table), id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// load decodes the body of one row into dst; found is false when no row matches
func load(q querier, table, id string, dst any) (found bool, err error) {
	var body string
	err = q.QueryRow(fmt.Sprintf(`SELECT body FROM %s WHERE id = ?`, table), id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return false, fmt.Errorf("decode %s %s: %w", table, id, err)
	}
	return true, nil
}

// bodies returns the JSON documents selected by query in row order
func bodies(q querier, query string, args ...any) ([][]byte, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		out = append(out, []byte(body))
	}
	return out, rows.Err()
}

func (s *Store) remove(table, id string) (bool, error) {
	result, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
