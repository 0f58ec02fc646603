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
	"fmt"
)

// AccountID identifies an account owning or attending an event. Account IDs
// are human-readable names following the usual on-chain naming rules: 2 to 64
// characters, lowercase alphanumerics separated by single '.', '-' or '_'
// characters.
type AccountID string

const (
	minAccountIdLength = 2
	maxAccountIdLength = 64
)

// ParseAccountID validates the given name and returns it as an AccountID.
func ParseAccountID(name string) (AccountID, error) {
	if len(name) < minAccountIdLength || len(name) > maxAccountIdLength {
		return "", fmt.Errorf("account ID must be %d to %d characters, got %d", minAccountIdLength, maxAccountIdLength, len(name))
	}
	lastWasSeparator := true // a separator must not start the name
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			lastWasSeparator = false
		case c == '.' || c == '-' || c == '_':
			if lastWasSeparator {
				return "", fmt.Errorf("account ID %q contains a misplaced separator at position %d", name, i)
			}
			lastWasSeparator = true
		default:
			return "", fmt.Errorf("account ID %q contains an invalid character at position %d", name, i)
		}
	}
	if lastWasSeparator {
		return "", fmt.Errorf("account ID %q must not end with a separator", name)
	}
	return AccountID(name), nil
}

func (a AccountID) String() string {
	return string(a)
}

// AccountIdSerializer is a Serializer of the AccountID type. Account IDs are
// encoded as their raw bytes; where a length prefix is required, the
// surrounding encoding provides it.
type AccountIdSerializer struct{}

func (a AccountIdSerializer) ToBytes(id AccountID) ([]byte, error) {
	if _, err := ParseAccountID(string(id)); err != nil {
		return nil, err
	}
	return []byte(id), nil
}

func (a AccountIdSerializer) FromBytes(bytes []byte) (AccountID, error) {
	return ParseAccountID(string(bytes))
}
