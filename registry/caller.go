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
	"errors"

	"github.com/0xsoniclabs/eventdb/common"
)

// ErrNoCaller is returned by operations requiring a caller identity when the
// context carries none.
var ErrNoCaller = errors.New("no caller identity in context")

type callerKey struct{}

// WithCaller returns a context carrying the given account as the caller
// identity. Mutating operations act on behalf of this account.
func WithCaller(ctx context.Context, caller common.AccountID) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom extracts the caller identity from the context.
func CallerFrom(ctx context.Context) (common.AccountID, error) {
	caller, ok := ctx.Value(callerKey{}).(common.AccountID)
	if !ok {
		return "", ErrNoCaller
	}
	return caller, nil
}
