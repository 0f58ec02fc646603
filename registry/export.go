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
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"golang.org/x/crypto/sha3"

	"github.com/0xsoniclabs/eventdb/common"
)

// Magic number of the registry export format.
const exportMagic uint32 = 0xE1E47D06

// Export writes a snappy-compressed dump of the registry's full storage
// content to the given writer. Entries are emitted in ascending key order, so
// equal registry states produce byte-identical dumps. The returned hash is
// the sha3-256 digest of the uncompressed stream and serves as the state
// hash of the registry.
func (r *Registry) Export(ctx context.Context, out io.Writer) (common.Hash, error) {
	compressor := snappy.NewBufferedWriter(out)
	digest := sha3.New256()
	sink := io.MultiWriter(compressor, digest)

	if err := binary.Write(sink, binary.BigEndian, exportMagic); err != nil {
		return common.Hash{}, err
	}
	err := r.store.Iterate(nil, func(key, value []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return writeEntry(sink, key, value)
	})
	if err != nil {
		return common.Hash{}, errors.Join(err, compressor.Close())
	}
	if err := compressor.Close(); err != nil {
		return common.Hash{}, err
	}
	var hash common.Hash
	digest.Sum(hash[:0])
	return hash, nil
}

// Import reads a dump produced by Export into the registry's store. The
// target store is expected to be empty; imported entries overwrite existing
// ones. The returned hash is the sha3-256 digest of the uncompressed stream,
// matching the hash reported by the exporting side.
func (r *Registry) Import(ctx context.Context, in io.Reader) (common.Hash, error) {
	digest := sha3.New256()
	source := io.TeeReader(snappy.NewReader(in), digest)

	var magic uint32
	if err := binary.Read(source, binary.BigEndian, &magic); err != nil {
		return common.Hash{}, err
	}
	if magic != exportMagic {
		return common.Hash{}, fmt.Errorf("invalid registry dump, wrong magic number %x", magic)
	}
	for {
		if err := ctx.Err(); err != nil {
			return common.Hash{}, err
		}
		key, value, err := readEntry(source)
		if err == io.EOF {
			break
		}
		if err != nil {
			return common.Hash{}, err
		}
		if err := r.store.Put(key, value); err != nil {
			return common.Hash{}, err
		}
	}
	var hash common.Hash
	digest.Sum(hash[:0])
	return hash, nil
}

// StateHash computes the state hash of the registry without retaining the
// dump.
func (r *Registry) StateHash(ctx context.Context) (common.Hash, error) {
	return r.Export(ctx, io.Discard)
}

func writeEntry(w io.Writer, key, value []byte) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(key))); err != nil {
		return err
	}
	if _, err := w.Write(key); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(value))); err != nil {
		return err
	}
	_, err := w.Write(value)
	return err
}

func readEntry(r io.Reader) (key, value []byte, err error) {
	var keyLen uint32
	if err := binary.Read(r, binary.BigEndian, &keyLen); err != nil {
		return nil, nil, err // io.EOF marks a clean end of the dump
	}
	key = make([]byte, keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, nil, err
	}
	var valueLen uint32
	if err := binary.Read(r, binary.BigEndian, &valueLen); err != nil {
		return nil, nil, err
	}
	value = make([]byte, valueLen)
	if _, err := io.ReadFull(r, value); err != nil {
		return nil, nil, err
	}
	return key, value, nil
}
