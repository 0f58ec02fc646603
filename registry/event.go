// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package registry

import (
	"fmt"

	"github.com/0xsoniclabs/eventdb/backend"
	"github.com/0xsoniclabs/eventdb/collections"
	"github.com/0xsoniclabs/eventdb/common"
	"github.com/0xsoniclabs/eventdb/common/amount"
)

// Event is the persisted shape of an event record. The guest set is not
// embedded in the record; the record carries a handle to a separate
// persistent collection, keyed uniquely per owner. Event values are encoded
// with the canonical binary layout produced by eventSerializer and must never
// cross the API boundary; see EventInfo for the boundary shape.
type Event struct {
	// Price is the amount of tokens to pay for an event ticket.
	Price amount.Amount
	// Guests is the persistent set of accounts invited to the event.
	Guests *collections.UnorderedSet[common.AccountID]
}

// newGuestSet creates the guest set handle of the given owner. The set's
// storage key is tagged with the owner ID, so guest sets of different owners
// occupy disjoint key ranges of the same store.
func newGuestSet(store backend.KeyValueStore, owner common.AccountID) *collections.UnorderedSet[common.AccountID] {
	return collections.NewUnorderedSet(
		store,
		backend.NewStorageKey(backend.GuestsKey, []byte(owner)),
		common.AccountIdSerializer{},
	)
}

// eventSerializer is the common.Serializer of persisted Event records. The
// binary layout is the 16-byte big-endian price followed by the storage key
// of the guest set. Decoding rehydrates the guest set handle against the
// serializer's store.
type eventSerializer struct {
	store backend.KeyValueStore
}

func (s eventSerializer) ToBytes(event Event) ([]byte, error) {
	if event.Guests == nil {
		return nil, fmt.Errorf("event record without a guest set handle")
	}
	price := event.Price.Bytes16()
	res := make([]byte, 0, len(price)+len(event.Guests.StorageKey()))
	res = append(res, price[:]...)
	return append(res, event.Guests.StorageKey()...), nil
}

func (s eventSerializer) FromBytes(data []byte) (Event, error) {
	if len(data) <= amount.BytesLength {
		return Event{}, fmt.Errorf("invalid event encoding of %d bytes", len(data))
	}
	price, err := amount.NewFromBytes(data[:amount.BytesLength]...)
	if err != nil {
		return Event{}, err
	}
	prefix := make(backend.StorageKey, len(data)-amount.BytesLength)
	copy(prefix, data[amount.BytesLength:])
	return Event{
		Price:  price,
		Guests: collections.NewUnorderedSet(s.store, prefix, common.AccountIdSerializer{}),
	}, nil
}
