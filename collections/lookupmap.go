// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package collections provides persistent collections living in a
// backend.KeyValueStore. Each collection owns the key range below its storage
// key; collections with distinct storage keys never interfere.
package collections

import (
	"fmt"

	"github.com/0xsoniclabs/eventdb/backend"
	"github.com/0xsoniclabs/eventdb/common"
)

// LookupMap is a persistent map from keys to values. Entries are stored
// individually; the map keeps no element listing of its own, so lookups and
// updates touch a single store entry each.
type LookupMap[K any, V any] struct {
	store           backend.KeyValueStore
	prefix          backend.StorageKey
	keySerializer   common.Serializer[K]
	valueSerializer common.Serializer[V]
}

// NewLookupMap creates a map view on the given store under the given storage
// key. Creating a view is free; no store access happens until the first
// operation.
func NewLookupMap[K any, V any](
	store backend.KeyValueStore,
	prefix backend.StorageKey,
	keySerializer common.Serializer[K],
	valueSerializer common.Serializer[V],
) *LookupMap[K, V] {
	return &LookupMap[K, V]{
		store:           store,
		prefix:          prefix,
		keySerializer:   keySerializer,
		valueSerializer: valueSerializer,
	}
}

// Get returns the value stored under the key, and whether it exists.
func (m *LookupMap[K, V]) Get(key K) (value V, exists bool, err error) {
	entry, err := m.entryKey(key)
	if err != nil {
		return value, false, err
	}
	data, exists, err := m.store.Get(entry)
	if err != nil || !exists {
		return value, false, err
	}
	value, err = m.valueSerializer.FromBytes(data)
	if err != nil {
		return value, false, fmt.Errorf("failed to decode map value: %w", err)
	}
	return value, true, nil
}

// Insert stores the value under the key and returns the previous value, if
// any.
func (m *LookupMap[K, V]) Insert(key K, value V) (previous V, replaced bool, err error) {
	previous, replaced, err = m.Get(key)
	if err != nil {
		return previous, false, err
	}
	entry, err := m.entryKey(key)
	if err != nil {
		return previous, false, err
	}
	data, err := m.valueSerializer.ToBytes(value)
	if err != nil {
		return previous, false, fmt.Errorf("failed to encode map value: %w", err)
	}
	if err := m.store.Put(entry, data); err != nil {
		return previous, false, err
	}
	return previous, replaced, nil
}

// Delete removes the entry stored under the key, if any.
func (m *LookupMap[K, V]) Delete(key K) error {
	entry, err := m.entryKey(key)
	if err != nil {
		return err
	}
	return m.store.Delete(entry)
}

func (m *LookupMap[K, V]) entryKey(key K) ([]byte, error) {
	data, err := m.keySerializer.ToBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to encode map key: %w", err)
	}
	return m.prefix.Entry(data...), nil
}
