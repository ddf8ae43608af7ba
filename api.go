// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/luxfi/multisig/record"
)

type Logger interface {
	// Log that an error has occurred. The program should be able to recover
	// from this error
	Error(msg string, fields ...zap.Field)
	// Log that an event has occurred that may indicate a future error or
	// vulnerability
	Warn(msg string, fields ...zap.Field)
	// Log an event that may be useful for a user to see to measure the progress
	// of the protocol
	Info(msg string, fields ...zap.Field)
	// Log an event that may be useful for a programmer to see when debuging the
	// execution of the protocol
	Debug(msg string, fields ...zap.Field)
}

// Recoverer derives the signer identity that produced the given signature
// over the given digest. The curve and hash algorithm are the recoverer's
// concern; the wallet only compares and looks up the returned addresses.
type Recoverer interface {
	Recover(digest common.Hash, sig Signature) (common.Address, error)
}

// Invoker forwards an authorized call to an external target. A returned error
// means the callee signalled failure, and the whole action must abort.
type Invoker interface {
	Invoke(target common.Address, value *big.Int, payload []byte) error
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(target common.Address, value *big.Int, payload []byte) error

func (f InvokerFunc) Invoke(target common.Address, value *big.Int, payload []byte) error {
	return f(target, value, payload)
}

// EventLog is an append-only journal of applied actions. External observers
// replay it to reconstruct the trusted set, which the wallet itself never
// enumerates.
type EventLog interface {
	Append(*record.Record) error
	ReadAll() ([]record.Record, error)
}
