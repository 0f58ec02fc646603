// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"encoding/binary"
	"fmt"
)

// Serializer converts values of a type into their canonical binary
// representation and back. Implementations must be lossless: for every value
// v accepted by ToBytes, FromBytes(ToBytes(v)) == v, and the produced byte
// sequence is the only encoding of v.
type Serializer[T any] interface {
	// ToBytes encodes the value into its canonical binary form.
	ToBytes(T) ([]byte, error)
	// FromBytes decodes a value from its canonical binary form. The input
	// must cover the full encoding, no trailing bytes are allowed.
	FromBytes([]byte) (T, error)
}

// Identifier32Serializer is a Serializer of uint32 indices, big-endian.
type Identifier32Serializer struct{}

func (s Identifier32Serializer) ToBytes(id uint32) ([]byte, error) {
	return binary.BigEndian.AppendUint32(nil, id), nil
}

func (s Identifier32Serializer) FromBytes(bytes []byte) (uint32, error) {
	if len(bytes) != 4 {
		return 0, fmt.Errorf("invalid identifier encoding, wanted 4 bytes, got %d", len(bytes))
	}
	return binary.BigEndian.Uint32(bytes), nil
}
