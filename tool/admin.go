// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/pbnjay/memory"
	"github.com/urfave/cli/v2"
)

var ExportCmd = cli.Command{
	Action:    doExport,
	Name:      "export",
	Usage:     "write a compressed dump of the registry to a file",
	ArgsUsage: "<target file>",
}

var ImportCmd = cli.Command{
	Action:    doImport,
	Name:      "import",
	Usage:     "load a registry dump into the database",
	ArgsUsage: "<source file>",
}

var InfoCmd = cli.Command{
	Action: doInfo,
	Name:   "info",
	Usage:  "print the registry's state hash and environment information",
}

func doExport(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one target file parameter")
	}
	reg, err := openRegistry(context)
	if err != nil {
		return err
	}
	defer reg.Close()

	file, err := os.Create(context.Args().Get(0))
	if err != nil {
		return err
	}
	buffer := bufio.NewWriter(file)
	hash, err := reg.Export(context.Context, buffer)
	if err != nil {
		return errors.Join(err, file.Close())
	}
	if err := errors.Join(buffer.Flush(), file.Close()); err != nil {
		return err
	}
	log.Info().Stringer("hash", hash).Msg("registry exported")
	return nil
}

func doImport(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one source file parameter")
	}
	reg, err := openRegistry(context)
	if err != nil {
		return err
	}
	defer reg.Close()

	file, err := os.Open(context.Args().Get(0))
	if err != nil {
		return err
	}
	hash, err := reg.Import(context.Context, bufio.NewReader(file))
	if err != nil {
		return errors.Join(err, file.Close())
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.Info().Stringer("hash", hash).Msg("registry imported")
	return nil
}

func doInfo(context *cli.Context) error {
	reg, err := openRegistry(context)
	if err != nil {
		return err
	}
	defer reg.Close()

	hash, err := reg.StateHash(context.Context)
	if err != nil {
		return err
	}
	fmt.Printf("state hash:    %s\n", hash)
	fmt.Printf("total memory:  %d MiB\n", memory.TotalMemory()>>20)
	fmt.Printf("free memory:   %d MiB\n", memory.FreeMemory()>>20)
	return nil
}
