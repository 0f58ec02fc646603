// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Store is a backend.KeyValueStore implementation persisting data in a
// LevelDB instance on disk.
type Store struct {
	db *leveldb.DB
}

// OpenStore opens (or creates) a LevelDB-backed store in the given directory.
func OpenStore(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Get returns the value stored under the key, and whether it exists.
func (s *Store) Get(key []byte) ([]byte, bool, error) {
	value, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores the value under the key, replacing any previous value.
func (s *Store) Put(key, value []byte) error {
	return s.db.Put(key, value, nil)
}

// Delete removes the key; deleting an absent key is a no-op.
func (s *Store) Delete(key []byte) error {
	return s.db.Delete(key, nil)
}

// Iterate visits all entries with the given key prefix in ascending key
// order.
func (s *Store) Iterate(prefix []byte, visit func(key, value []byte) error) error {
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()
	for iter.Next() {
		if err := visit(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Flush is a no-op; LevelDB writes through its journal on every Put.
func (s *Store) Flush() error {
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
