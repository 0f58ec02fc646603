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
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/0xsoniclabs/eventdb/backend"
	"github.com/0xsoniclabs/eventdb/backend/ldb"
	"github.com/0xsoniclabs/eventdb/backend/sqlite"
	"github.com/0xsoniclabs/eventdb/common"
	"github.com/0xsoniclabs/eventdb/registry"
)

// Run using
//  go run ./tool <command> <flags>

var (
	dbFlag = cli.StringFlag{
		Name:     "db",
		Usage:    "path of the registry database",
		Required: true,
	}
	backendFlag = cli.StringFlag{
		Name:  "backend",
		Usage: "storage backend to use, leveldb or sqlite",
		Value: "leveldb",
	}
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "account ID to act on behalf of",
	}
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	app := &cli.App{
		Name:      "eventdb",
		Usage:     "event registry toolbox",
		Copyright: "(c) 2022-25 Sonic Operations Ltd",
		Flags: []cli.Flag{
			&dbFlag,
			&backendFlag,
		},
		Commands: []*cli.Command{
			&GetCmd,
			&InsertCmd,
			&SetGuestsCmd,
			&ExportCmd,
			&ImportCmd,
			&InfoCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openRegistry opens the registry over the backend selected by the global
// flags. The caller is responsible for closing the returned registry.
func openRegistry(context *cli.Context) (*registry.Registry, error) {
	path := context.String(dbFlag.Name)
	var store backend.KeyValueStore
	var err error
	switch name := context.String(backendFlag.Name); name {
	case "leveldb":
		store, err = ldb.OpenStore(path)
	case "sqlite":
		store, err = sqlite.OpenStore(path)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Msg("registry opened")
	return registry.NewRegistry(store), nil
}

// callerAccount resolves the --caller flag into a validated account ID.
func callerAccount(context *cli.Context) (common.AccountID, error) {
	name := context.String(callerFlag.Name)
	if name == "" {
		return "", fmt.Errorf("the --%s flag is required for this command", callerFlag.Name)
	}
	return common.ParseAccountID(name)
}
