// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package backend_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xsoniclabs/eventdb/backend"
	"github.com/0xsoniclabs/eventdb/backend/ldb"
	"github.com/0xsoniclabs/eventdb/backend/memory"
	"github.com/0xsoniclabs/eventdb/backend/sqlite"
)

func initStores() map[string]func(t *testing.T) backend.KeyValueStore {
	return map[string]func(t *testing.T) backend.KeyValueStore{
		"memory": func(t *testing.T) backend.KeyValueStore {
			return memory.NewStore()
		},
		"leveldb": func(t *testing.T) backend.KeyValueStore {
			store, err := ldb.OpenStore(t.TempDir())
			if err != nil {
				t.Fatalf("failed to open leveldb store; %s", err)
			}
			t.Cleanup(func() {
				_ = store.Close()
			})
			return store
		},
		"sqlite": func(t *testing.T) backend.KeyValueStore {
			store, err := sqlite.OpenStore(filepath.Join(t.TempDir(), "test.db"))
			if err != nil {
				t.Fatalf("failed to open sqlite store; %s", err)
			}
			t.Cleanup(func() {
				_ = store.Close()
			})
			return store
		},
	}
}

func TestStore_GetOfAbsentKeyReportsNotFound(t *testing.T) {
	for name, factory := range initStores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			_, exists, err := store.Get([]byte("absent"))
			require.NoError(t, err)
			require.False(t, exists)
		})
	}
}

func TestStore_PutAndGetRoundTrip(t *testing.T) {
	for name, factory := range initStores() {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store := factory(t)

			require.NoError(store.Put([]byte("key"), []byte("value")))
			value, exists, err := store.Get([]byte("key"))
			require.NoError(err)
			require.True(exists)
			require.Equal([]byte("value"), value)

			// overwrites replace the previous value
			require.NoError(store.Put([]byte("key"), []byte("other")))
			value, exists, err = store.Get([]byte("key"))
			require.NoError(err)
			require.True(exists)
			require.Equal([]byte("other"), value)
		})
	}
}

func TestStore_PutAcceptsEmptyValues(t *testing.T) {
	for name, factory := range initStores() {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store := factory(t)

			require.NoError(store.Put([]byte("key"), []byte{}))
			value, exists, err := store.Get([]byte("key"))
			require.NoError(err)
			require.True(exists)
			require.Empty(value)
		})
	}
}

func TestStore_DeleteRemovesKeys(t *testing.T) {
	for name, factory := range initStores() {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store := factory(t)

			require.NoError(store.Put([]byte("key"), []byte("value")))
			require.NoError(store.Delete([]byte("key")))
			_, exists, err := store.Get([]byte("key"))
			require.NoError(err)
			require.False(exists)

			// deleting an absent key is not an error
			require.NoError(store.Delete([]byte("key")))
		})
	}
}

func TestStore_IterateVisitsPrefixInAscendingKeyOrder(t *testing.T) {
	for name, factory := range initStores() {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store := factory(t)

			require.NoError(store.Put([]byte("a/2"), []byte("v2")))
			require.NoError(store.Put([]byte("a/1"), []byte("v1")))
			require.NoError(store.Put([]byte("a/3"), []byte("v3")))
			require.NoError(store.Put([]byte("b/1"), []byte("other")))

			var keys, values []string
			err := store.Iterate([]byte("a/"), func(key, value []byte) error {
				keys = append(keys, string(key))
				values = append(values, string(value))
				return nil
			})
			require.NoError(err)
			require.Equal([]string{"a/1", "a/2", "a/3"}, keys)
			require.Equal([]string{"v1", "v2", "v3"}, values)
		})
	}
}

func TestStore_IterateWithEmptyPrefixVisitsEverything(t *testing.T) {
	for name, factory := range initStores() {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store := factory(t)

			require.NoError(store.Put([]byte{0x00}, []byte("low")))
			require.NoError(store.Put([]byte{0xFF, 0xFF}, []byte("high")))

			count := 0
			err := store.Iterate(nil, func(key, value []byte) error {
				count++
				return nil
			})
			require.NoError(err)
			require.Equal(2, count)
		})
	}
}

func TestStore_IterateStopsOnVisitorError(t *testing.T) {
	for name, factory := range initStores() {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store := factory(t)

			require.NoError(store.Put([]byte("a/1"), nil))
			require.NoError(store.Put([]byte("a/2"), nil))

			count := 0
			err := store.Iterate([]byte("a/"), func(key, value []byte) error {
				count++
				return errStop
			})
			require.ErrorIs(err, errStop)
			require.Equal(1, count)
		})
	}
}

func TestStore_DataSurvivesReopening(t *testing.T) {
	t.Run("leveldb", func(t *testing.T) {
		require := require.New(t)
		dir := t.TempDir()

		store, err := ldb.OpenStore(dir)
		require.NoError(err)
		require.NoError(store.Put([]byte("key"), []byte("value")))
		require.NoError(store.Close())

		store, err = ldb.OpenStore(dir)
		require.NoError(err)
		defer store.Close()
		value, exists, err := store.Get([]byte("key"))
		require.NoError(err)
		require.True(exists)
		require.Equal([]byte("value"), value)
	})
	t.Run("sqlite", func(t *testing.T) {
		require := require.New(t)
		path := filepath.Join(t.TempDir(), "test.db")

		store, err := sqlite.OpenStore(path)
		require.NoError(err)
		require.NoError(store.Put([]byte("key"), []byte("value")))
		require.NoError(store.Close())

		store, err = sqlite.OpenStore(path)
		require.NoError(err)
		defer store.Close()
		value, exists, err := store.Get([]byte("key"))
		require.NoError(err)
		require.True(exists)
		require.Equal([]byte("value"), value)
	})
}

var errStop = errors.New("stop")
