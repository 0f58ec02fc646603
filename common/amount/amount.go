// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package amount provides 128-bit unsigned token amounts. Amounts are stored
// in a fixed 16-byte binary layout and exchanged at API boundaries as decimal
// strings, so that consumers without native 128-bit integers (JavaScript in
// particular) never lose precision.
package amount

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// BytesLength is the size of the canonical binary encoding of an Amount.
const BytesLength = 16

// Amount is a 128-bit unsigned integer value.
type Amount struct {
	internal uint256.Int
}

// New creates a new amount from the given uint64 value.
func New(value uint64) Amount {
	return Amount{internal: *uint256.NewInt(value)}
}

// NewFromBytes creates a new amount from up to 16 big-endian bytes.
func NewFromBytes(bytes ...byte) (Amount, error) {
	if len(bytes) > BytesLength {
		return Amount{}, fmt.Errorf("amount encoding must not exceed %d bytes, got %d", BytesLength, len(bytes))
	}
	var res Amount
	res.internal.SetBytes(bytes)
	return res, nil
}

// NewFromString parses a decimal string into an amount. The value must fit
// into 128 bits.
func NewFromString(value string) (Amount, error) {
	i, err := uint256.FromDecimal(value)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if i.BitLen() > 128 {
		return Amount{}, fmt.Errorf("amount %q exceeds 128 bits", value)
	}
	return Amount{internal: *i}, nil
}

// Uint64 returns the amount as a uint64; the caller must know the value fits.
func (a Amount) Uint64() uint64 {
	return a.internal.Uint64()
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.internal.IsZero()
}

// String renders the amount as a decimal string.
func (a Amount) String() string {
	return a.internal.Dec()
}

// Bytes16 returns the canonical 16-byte big-endian encoding of the amount.
func (a Amount) Bytes16() [BytesLength]byte {
	full := a.internal.Bytes32()
	var res [BytesLength]byte
	copy(res[:], full[BytesLength:])
	return res
}

// MarshalJSON encodes the amount as a JSON decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the amount from a JSON decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("amount must be a decimal string: %w", err)
	}
	res, err := NewFromString(str)
	if err != nil {
		return err
	}
	*a = res
	return nil
}
