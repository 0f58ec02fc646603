// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"bytes"
	"slices"
)

// Store is an in-memory backend.KeyValueStore implementation. It is intended
// for tests and development; nothing is persisted beyond the process
// lifetime.
type Store struct {
	data map[string][]byte
}

// NewStore constructs a new empty in-memory store.
func NewStore() *Store {
	return &Store{data: map[string][]byte{}}
}

// Get returns the value stored under the key, and whether it exists.
func (s *Store) Get(key []byte) ([]byte, bool, error) {
	value, exists := s.data[string(key)]
	if !exists {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

// Put stores the value under the key, replacing any previous value.
func (s *Store) Put(key, value []byte) error {
	s.data[string(key)] = slices.Clone(value)
	return nil
}

// Delete removes the key; deleting an absent key is a no-op.
func (s *Store) Delete(key []byte) error {
	delete(s.data, string(key))
	return nil
}

// Iterate visits all entries with the given key prefix in ascending key
// order.
func (s *Store) Iterate(prefix []byte, visit func(key, value []byte) error) error {
	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		if bytes.HasPrefix([]byte(key), prefix) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	for _, key := range keys {
		if err := visit([]byte(key), s.data[key]); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op for the in-memory store.
func (s *Store) Flush() error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
