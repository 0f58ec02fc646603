// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package registry implements a durable event registry. Each account owns at
// most one event record, consisting of a ticket price and a set of invited
// guests. Records are persisted in a canonical binary encoding inside a
// key-value store; the API surface exchanges a self-describing JSON shape
// instead (see EventInfo).
//
// The registry assumes the single-invocation execution model of a contract
// runtime: calls run to completion one at a time, and the registry performs
// no synchronization of its own.
package registry

import (
	"context"
	"errors"

	"github.com/0xsoniclabs/eventdb/backend"
	"github.com/0xsoniclabs/eventdb/collections"
	"github.com/0xsoniclabs/eventdb/common"
)

// ErrMissingEvent is returned when an operation refers to an owner with no
// stored event record.
var ErrMissingEvent = errors.New("missing event record")

// Registry is the event registry over a key-value store. The zero state of a
// fresh store is a valid empty registry; no explicit initialization step
// exists.
type Registry struct {
	store  backend.KeyValueStore
	events *collections.LookupMap[common.AccountID, Event]
}

// NewRegistry creates a registry view on the given store.
func NewRegistry(store backend.KeyValueStore) *Registry {
	return &Registry{
		store: store,
		events: collections.NewLookupMap(
			store,
			backend.NewStorageKey(backend.EventsKey),
			common.AccountIdSerializer{},
			eventSerializer{store},
		),
	}
}

// GetEvent returns the event record of the given owner in its boundary
// shape. Fails with ErrMissingEvent if the owner has no record. The guest
// sequence follows the guest set's iteration order.
func (r *Registry) GetEvent(owner common.AccountID) (EventInfo, error) {
	event, err := r.getEvent(owner)
	if err != nil {
		return EventInfo{}, err
	}
	return newEventInfo(event)
}

// InsertEvent stores an event record for the caller identified by the
// context, replacing any prior record of that caller entirely: the price is
// overwritten and the guest set is reset before being populated with the
// given guests. The per-owner guest storage key is reused across
// replacements, so leftovers of the prior set are dropped explicitly.
func (r *Registry) InsertEvent(ctx context.Context, info EventInfo) error {
	owner, err := CallerFrom(ctx)
	if err != nil {
		return err
	}
	guests := newGuestSet(r.store, owner)
	if err := guests.Clear(); err != nil {
		return err
	}
	if err := r.setEvent(owner, Event{Price: info.Price, Guests: guests}); err != nil {
		return err
	}
	return r.SetGuests(ctx, info.Guests)
}

// SetGuests adds the given accounts to the guest set of the caller's event.
// The operation is additive; present guests stay, and duplicates in the
// input collapse. Fails with ErrMissingEvent if the caller has no event.
func (r *Registry) SetGuests(ctx context.Context, guests []common.AccountID) error {
	owner, err := CallerFrom(ctx)
	if err != nil {
		return err
	}
	event, err := r.getEvent(owner)
	if err != nil {
		return err
	}
	for _, guest := range guests {
		if _, err := event.Guests.Insert(guest); err != nil {
			return err
		}
	}
	return r.setEvent(owner, event)
}

// getEvent loads the raw event record of an owner, without any format
// conversion.
func (r *Registry) getEvent(owner common.AccountID) (Event, error) {
	event, exists, err := r.events.Get(owner)
	if err != nil {
		return Event{}, err
	}
	if !exists {
		return Event{}, ErrMissingEvent
	}
	return event, nil
}

// setEvent stores the raw event record of an owner, without any format
// conversion.
func (r *Registry) setEvent(owner common.AccountID, event Event) error {
	_, _, err := r.events.Insert(owner, event)
	return err
}

// Flush flushes the underlying store.
func (r *Registry) Flush() error {
	return r.store.Flush()
}

// Close flushes and closes the underlying store.
func (r *Registry) Close() error {
	return errors.Join(r.store.Flush(), r.store.Close())
}
