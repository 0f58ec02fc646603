// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package collections

import (
	"encoding/binary"
	"fmt"

	"github.com/0xsoniclabs/eventdb/backend"
	"github.com/0xsoniclabs/eventdb/common"
)

// Sub-keys of an UnorderedSet below its storage key. The element entries are
// indexed with a big-endian position, so iterating them in key order yields
// insertion order.
const (
	setSizeTag    = 'n' // prefix|n           -> number of elements
	setElementTag = 'e' // prefix|e|position  -> element
	setIndexTag   = 'i' // prefix|i|element   -> position
)

// UnorderedSet is a persistent set of unique elements. Iteration follows
// insertion order; removals use swap-remove, so a removal may change the
// position of the most recently inserted element.
type UnorderedSet[E any] struct {
	store      backend.KeyValueStore
	prefix     backend.StorageKey
	serializer common.Serializer[E]
}

// NewUnorderedSet creates a set view on the given store under the given
// storage key.
func NewUnorderedSet[E any](
	store backend.KeyValueStore,
	prefix backend.StorageKey,
	serializer common.Serializer[E],
) *UnorderedSet[E] {
	return &UnorderedSet[E]{
		store:      store,
		prefix:     prefix,
		serializer: serializer,
	}
}

// StorageKey returns the storage key the set lives under.
func (s *UnorderedSet[E]) StorageKey() backend.StorageKey {
	return s.prefix
}

// Len returns the number of elements in the set.
func (s *UnorderedSet[E]) Len() (int, error) {
	size, err := s.size()
	return int(size), err
}

// Contains returns whether the element is a member of the set.
func (s *UnorderedSet[E]) Contains(element E) (bool, error) {
	data, err := s.serializer.ToBytes(element)
	if err != nil {
		return false, fmt.Errorf("failed to encode set element: %w", err)
	}
	_, exists, err := s.store.Get(s.indexKey(data))
	return exists, err
}

// Insert adds the element to the set. Inserting a present element is a no-op;
// the return value reports whether the set grew.
func (s *UnorderedSet[E]) Insert(element E) (bool, error) {
	data, err := s.serializer.ToBytes(element)
	if err != nil {
		return false, fmt.Errorf("failed to encode set element: %w", err)
	}
	_, exists, err := s.store.Get(s.indexKey(data))
	if err != nil || exists {
		return false, err
	}
	size, err := s.size()
	if err != nil {
		return false, err
	}
	if err := s.store.Put(s.elementKey(size), data); err != nil {
		return false, err
	}
	if err := s.store.Put(s.indexKey(data), binary.BigEndian.AppendUint32(nil, size)); err != nil {
		return false, err
	}
	return true, s.setSize(size + 1)
}

// Remove deletes the element from the set. The last inserted element takes
// over the removed element's position. The return value reports whether the
// set shrank.
func (s *UnorderedSet[E]) Remove(element E) (bool, error) {
	data, err := s.serializer.ToBytes(element)
	if err != nil {
		return false, fmt.Errorf("failed to encode set element: %w", err)
	}
	posData, exists, err := s.store.Get(s.indexKey(data))
	if err != nil || !exists {
		return false, err
	}
	if len(posData) != 4 {
		return false, fmt.Errorf("corrupted set index entry of %d bytes", len(posData))
	}
	position := binary.BigEndian.Uint32(posData)
	size, err := s.size()
	if err != nil {
		return false, err
	}
	last := size - 1
	if position != last {
		lastData, exists, err := s.store.Get(s.elementKey(last))
		if err != nil {
			return false, err
		}
		if !exists {
			return false, fmt.Errorf("corrupted set, missing element at position %d", last)
		}
		if err := s.store.Put(s.elementKey(position), lastData); err != nil {
			return false, err
		}
		if err := s.store.Put(s.indexKey(lastData), binary.BigEndian.AppendUint32(nil, position)); err != nil {
			return false, err
		}
	}
	if err := s.store.Delete(s.elementKey(last)); err != nil {
		return false, err
	}
	if err := s.store.Delete(s.indexKey(data)); err != nil {
		return false, err
	}
	return true, s.setSize(last)
}

// Elements returns all elements of the set in insertion order.
func (s *UnorderedSet[E]) Elements() ([]E, error) {
	size, err := s.size()
	if err != nil {
		return nil, err
	}
	res := make([]E, 0, size)
	for i := uint32(0); i < size; i++ {
		data, exists, err := s.store.Get(s.elementKey(i))
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("corrupted set, missing element at position %d", i)
		}
		element, err := s.serializer.FromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode set element: %w", err)
		}
		res = append(res, element)
	}
	return res, nil
}

// Clear removes all entries of the set from the store, including entries left
// behind by an earlier set that used the same storage key.
func (s *UnorderedSet[E]) Clear() error {
	var keys [][]byte
	err := s.store.Iterate(s.prefix, func(key, _ []byte) error {
		copied := make([]byte, len(key))
		copy(copied, key)
		keys = append(keys, copied)
		return nil
	})
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (s *UnorderedSet[E]) size() (uint32, error) {
	data, exists, err := s.store.Get(s.prefix.Entry(setSizeTag))
	if err != nil || !exists {
		return 0, err
	}
	if len(data) != 4 {
		return 0, fmt.Errorf("corrupted set size entry of %d bytes", len(data))
	}
	return binary.BigEndian.Uint32(data), nil
}

func (s *UnorderedSet[E]) setSize(size uint32) error {
	return s.store.Put(s.prefix.Entry(setSizeTag), binary.BigEndian.AppendUint32(nil, size))
}

func (s *UnorderedSet[E]) elementKey(position uint32) []byte {
	return s.prefix.Entry(binary.BigEndian.AppendUint32([]byte{setElementTag}, position)...)
}

func (s *UnorderedSet[E]) indexKey(element []byte) []byte {
	return s.prefix.Entry(append([]byte{setIndexTag}, element...)...)
}
