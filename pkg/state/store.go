// Package state persists per-user browsing state between sessions.
package state

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS collapsed_nodes (
	node_id TEXT PRIMARY KEY
)`

// Store keeps the collapsed tree nodes in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path. ":memory:" is accepted for a
// throwaway store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create state directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open state database %s", path)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create state schema")
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// LoadCollapsedNodes returns the stored node ids sorted.
func (s *Store) LoadCollapsedNodes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT node_id FROM collapsed_nodes ORDER BY node_id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query collapsed nodes")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan collapsed node")
		}
		ids = append(ids, id)
	}
	return ids, errors.Wrap(rows.Err(), "failed to read collapsed nodes")
}

// SaveCollapsedNodes replaces the stored set with ids.
func (s *Store) SaveCollapsedNodes(ctx context.Context, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collapsed_nodes`); err != nil {
		return errors.Wrap(err, "failed to clear collapsed nodes")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO collapsed_nodes (node_id) VALUES (?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	for _, id := range sorted {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return errors.Wrapf(err, "failed to store collapsed node %q", id)
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit collapsed nodes")
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
