// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package backend provides the durable key-value substrate the persistent
// collections are built on, together with the keyspace partitioning scheme
// that keeps logically distinct collections from colliding in one store.
package backend

import (
	"encoding/binary"
)

// KeyValueStore is the storage abstraction all persistent collections build
// on. Implementations must visit keys in ascending byte order during
// iteration. Implementations are not required to be thread-safe; callers are
// expected to serialize access.
type KeyValueStore interface {
	// Get returns the value stored under the key, and whether it exists.
	Get(key []byte) ([]byte, bool, error)

	// Put stores the value under the key, replacing any previous value.
	Put(key, value []byte) error

	// Delete removes the key; deleting an absent key is a no-op.
	Delete(key []byte) error

	// Iterate visits all entries whose key starts with the prefix, in
	// ascending key order. A non-nil error from visit stops the iteration
	// and is returned.
	Iterate(prefix []byte, visit func(key, value []byte) error) error

	FlushAndCloser
}

// FlushAndCloser is a resource that can be flushed to disk and closed.
type FlushAndCloser interface {
	Flush() error
	Close() error
}

// TableSpace is a single-byte discriminator separating the keyspaces of
// distinct collections stored in one KeyValueStore.
type TableSpace byte

const (
	// EventsKey is the table space of the registry's root event map.
	EventsKey TableSpace = 'E'
	// GuestsKey is the table space of the per-owner guest sets.
	GuestsKey TableSpace = 'G'
)

// StorageKey is a prefix under which one collection keeps all of its entries.
// It consists of a TableSpace discriminator followed by length-prefixed
// disambiguating fields (for instance the owner ID of a per-owner guest set).
// The length prefixes make storage keys prefix-free among each other: no
// collection's keyspace is a sub-range of another's.
type StorageKey []byte

// NewStorageKey builds a storage key from a table space and optional
// disambiguating fields.
func NewStorageKey(table TableSpace, fields ...[]byte) StorageKey {
	size := 1
	for _, field := range fields {
		size += 2 + len(field)
	}
	res := make(StorageKey, 0, size)
	res = append(res, byte(table))
	for _, field := range fields {
		res = binary.BigEndian.AppendUint16(res, uint16(len(field)))
		res = append(res, field...)
	}
	return res
}

// Entry derives the full store key of one entry of the collection by
// appending the entry's suffix to the collection's storage key.
func (k StorageKey) Entry(suffix ...byte) []byte {
	res := make([]byte, 0, len(k)+len(suffix))
	res = append(res, k...)
	return append(res, suffix...)
}
