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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAccountID_AcceptsValidNames(t *testing.T) {
	for _, name := range []string{
		"ab",
		"alice",
		"alice.testnet",
		"sub.account.near",
		"account-1_b.x2",
		strings.Repeat("a", 64),
	} {
		id, err := ParseAccountID(name)
		require.NoError(t, err, "name %q", name)
		require.Equal(t, name, id.String())
	}
}

func TestParseAccountID_RejectsInvalidNames(t *testing.T) {
	for _, name := range []string{
		"",
		"a",
		strings.Repeat("a", 65),
		"Alice",
		"alice!",
		".alice",
		"alice.",
		"ali..ce",
		"ali.-ce",
		"has space",
	} {
		if _, err := ParseAccountID(name); err == nil {
			t.Errorf("name %q should have been rejected", name)
		}
	}
}

func TestAccountIdSerializer_RoundTrips(t *testing.T) {
	require := require.New(t)
	serializer := AccountIdSerializer{}

	id := AccountID("alice.testnet")
	data, err := serializer.ToBytes(id)
	require.NoError(err)
	restored, err := serializer.FromBytes(data)
	require.NoError(err)
	require.Equal(id, restored)
}

func TestAccountIdSerializer_RejectsInvalidInput(t *testing.T) {
	serializer := AccountIdSerializer{}
	if _, err := serializer.ToBytes(AccountID("Not Valid")); err == nil {
		t.Errorf("encoding an invalid account ID should fail")
	}
	if _, err := serializer.FromBytes([]byte("Not Valid")); err == nil {
		t.Errorf("decoding an invalid account ID should fail")
	}
}

func TestIdentifier32Serializer_RoundTrips(t *testing.T) {
	require := require.New(t)
	serializer := Identifier32Serializer{}

	for _, id := range []uint32{0, 1, 256, 1<<32 - 1} {
		data, err := serializer.ToBytes(id)
		require.NoError(err)
		require.Len(data, 4)
		restored, err := serializer.FromBytes(data)
		require.NoError(err)
		require.Equal(id, restored)
	}

	_, err := serializer.FromBytes([]byte{1, 2, 3})
	require.Error(err)
}
