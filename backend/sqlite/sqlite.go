// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sqlite

import (
	"database/sql"
	"fmt"
	"slices"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a backend.KeyValueStore implementation persisting data in a
// single-table SQLite database. SQLite compares BLOBs with memcmp, so the
// natural index order matches the byte order required for iteration.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) a SQLite-backed store at the given file path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite at %s: %w", path, err)
	}
	_, err = db.Exec("CREATE TABLE IF NOT EXISTS storage (k BLOB PRIMARY KEY, v BLOB NOT NULL) WITHOUT ROWID")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage table: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value stored under the key, and whether it exists.
func (s *Store) Get(key []byte) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT v FROM storage WHERE k = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores the value under the key, replacing any previous value.
func (s *Store) Put(key, value []byte) error {
	_, err := s.db.Exec("INSERT INTO storage(k, v) VALUES(?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v", key, value)
	return err
}

// Delete removes the key; deleting an absent key is a no-op.
func (s *Store) Delete(key []byte) error {
	_, err := s.db.Exec("DELETE FROM storage WHERE k = ?", key)
	return err
}

// Iterate visits all entries with the given key prefix in ascending key
// order.
func (s *Store) Iterate(prefix []byte, visit func(key, value []byte) error) error {
	var rows *sql.Rows
	var err error
	if len(prefix) == 0 {
		rows, err = s.db.Query("SELECT k, v FROM storage ORDER BY k")
	} else if limit, bounded := upperBound(prefix); bounded {
		rows, err = s.db.Query("SELECT k, v FROM storage WHERE k >= ? AND k < ? ORDER BY k", prefix, limit)
	} else {
		rows, err = s.db.Query("SELECT k, v FROM storage WHERE k >= ? ORDER BY k", prefix)
	}
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key, value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		if err := visit(key, value); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Flush is a no-op; every statement is committed on its own.
func (s *Store) Flush() error {
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// upperBound computes the smallest key greater than all keys starting with
// the prefix. A prefix of all 0xFF bytes has no finite upper bound.
func upperBound(prefix []byte) ([]byte, bool) {
	limit := slices.Clone(prefix)
	for i := len(limit) - 1; i >= 0; i-- {
		if limit[i] < 0xFF {
			limit[i]++
			return limit[:i+1], true
		}
	}
	return nil, false
}
