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
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/0xsoniclabs/eventdb/common"
	"github.com/0xsoniclabs/eventdb/registry"
)

var GetCmd = cli.Command{
	Action:    doGet,
	Name:      "get",
	Usage:     "print the event record of an owner",
	ArgsUsage: "<owner account ID>",
}

var InsertCmd = cli.Command{
	Action:    doInsert,
	Name:      "insert",
	Usage:     "store an event record for the caller, replacing any prior one",
	ArgsUsage: "<event JSON>",
	Flags: []cli.Flag{
		&callerFlag,
	},
}

var SetGuestsCmd = cli.Command{
	Action:    doSetGuests,
	Name:      "set-guests",
	Usage:     "add guests to the caller's event",
	ArgsUsage: "<guest account ID> ...",
	Flags: []cli.Flag{
		&callerFlag,
	},
}

func doGet(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one owner account ID")
	}
	owner, err := common.ParseAccountID(context.Args().Get(0))
	if err != nil {
		return err
	}
	reg, err := openRegistry(context)
	if err != nil {
		return err
	}
	defer reg.Close()

	info, err := reg.GetEvent(owner)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", data)
	return nil
}

func doInsert(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one event JSON document")
	}
	caller, err := callerAccount(context)
	if err != nil {
		return err
	}
	var info registry.EventInfo
	if err := json.Unmarshal([]byte(context.Args().Get(0)), &info); err != nil {
		return fmt.Errorf("invalid event document: %w", err)
	}
	reg, err := openRegistry(context)
	if err != nil {
		return err
	}
	defer reg.Close()

	ctx := registry.WithCaller(context.Context, caller)
	if err := reg.InsertEvent(ctx, info); err != nil {
		return err
	}
	log.Info().
		Str("owner", caller.String()).
		Str("price", info.Price.String()).
		Int("guests", len(info.Guests)).
		Msg("event stored")
	return nil
}

func doSetGuests(context *cli.Context) error {
	if context.Args().Len() == 0 {
		return fmt.Errorf("expected at least one guest account ID")
	}
	caller, err := callerAccount(context)
	if err != nil {
		return err
	}
	guests := make([]common.AccountID, 0, context.Args().Len())
	for _, arg := range context.Args().Slice() {
		guest, err := common.ParseAccountID(arg)
		if err != nil {
			return err
		}
		guests = append(guests, guest)
	}
	reg, err := openRegistry(context)
	if err != nil {
		return err
	}
	defer reg.Close()

	ctx := registry.WithCaller(context.Context, caller)
	if err := reg.SetGuests(ctx, guests); err != nil {
		return err
	}
	log.Info().
		Str("owner", caller.String()).
		Int("guests", len(guests)).
		Msg("guests added")
	return nil
}
