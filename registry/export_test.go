// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package registry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xsoniclabs/eventdb/backend/memory"
	"github.com/0xsoniclabs/eventdb/common"
	"github.com/0xsoniclabs/eventdb/registry"
)

func fillExampleRegistry(t *testing.T, reg *registry.Registry) {
	t.Helper()
	ctx := registry.WithCaller(context.Background(), "alice.testnet")
	err := reg.InsertEvent(ctx, registry.EventInfo{
		Price:  mustAmount(t, "1000000000000000000000000"),
		Guests: []common.AccountID{"bob.testnet", "cecil.testnet"},
	})
	require.NoError(t, err)
	ctx = registry.WithCaller(context.Background(), "bob.testnet")
	err = reg.InsertEvent(ctx, registry.EventInfo{
		Price:  mustAmount(t, "42"),
		Guests: []common.AccountID{"alice.testnet"},
	})
	require.NoError(t, err)
}

func TestRegistry_ExportImportRoundTrips(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	source := registry.NewRegistry(memory.NewStore())
	fillExampleRegistry(t, source)

	var dump bytes.Buffer
	exportHash, err := source.Export(ctx, &dump)
	require.NoError(err)

	target := registry.NewRegistry(memory.NewStore())
	importHash, err := target.Import(ctx, &dump)
	require.NoError(err)
	require.Equal(exportHash, importHash)

	info, err := target.GetEvent("alice.testnet")
	require.NoError(err)
	require.Equal("1000000000000000000000000", info.Price.String())
	require.Equal([]common.AccountID{"bob.testnet", "cecil.testnet"}, info.Guests)

	info, err = target.GetEvent("bob.testnet")
	require.NoError(err)
	require.Equal("42", info.Price.String())
	require.Equal([]common.AccountID{"alice.testnet"}, info.Guests)
}

func TestRegistry_StateHashIsDeterministic(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	a := registry.NewRegistry(memory.NewStore())
	b := registry.NewRegistry(memory.NewStore())
	fillExampleRegistry(t, a)
	fillExampleRegistry(t, b)

	hashA, err := a.StateHash(ctx)
	require.NoError(err)
	hashB, err := b.StateHash(ctx)
	require.NoError(err)
	require.Equal(hashA, hashB)

	// further mutations change the hash
	ctxAlice := registry.WithCaller(ctx, "alice.testnet")
	require.NoError(a.SetGuests(ctxAlice, []common.AccountID{"dave.testnet"}))
	hashC, err := a.StateHash(ctx)
	require.NoError(err)
	require.NotEqual(hashA, hashC)
}

func TestRegistry_ImportRejectsForeignData(t *testing.T) {
	reg := registry.NewRegistry(memory.NewStore())
	_, err := reg.Import(context.Background(), bytes.NewReader([]byte("not a registry dump")))
	require.Error(t, err)
}

func TestRegistry_ExportStopsOnCancelledContext(t *testing.T) {
	require := require.New(t)
	reg := registry.NewRegistry(memory.NewStore())
	fillExampleRegistry(t, reg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var dump bytes.Buffer
	_, err := reg.Export(ctx, &dump)
	require.ErrorIs(err, context.Canceled)
}
