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
	"github.com/0xsoniclabs/eventdb/common"
	"github.com/0xsoniclabs/eventdb/common/amount"
)

// EventInfo is the boundary shape of an event record, exchanged as JSON at
// the API surface and never persisted. The price travels as a decimal string
// to stay precise in consumers without 128-bit integers, and the guest set is
// projected into a sequence following the set's iteration order.
type EventInfo struct {
	Price  amount.Amount      `json:"price"`
	Guests []common.AccountID `json:"guests"`
}

// newEventInfo projects a persisted event into its boundary shape. Price
// value and guest membership are preserved exactly; the guest sequence
// follows the set's insertion order.
func newEventInfo(event Event) (EventInfo, error) {
	guests, err := event.Guests.Elements()
	if err != nil {
		return EventInfo{}, err
	}
	return EventInfo{
		Price:  event.Price,
		Guests: guests,
	}, nil
}
