// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const SignatureLen = 65

// Signature is a compact secp256k1 ECDSA signature in R || S || V layout,
// V being the recovery identifier (0/1, or 27/28 from wallet tooling).
type Signature [SignatureLen]byte

func (s Signature) String() string {
	return hex.EncodeToString(s[:8])
}

var (
	// ErrInvalidSignatures is returned when a consulted signature recovers to
	// an untrusted signer, or when the recovered signers are not in strictly
	// ascending order (which also covers duplicates).
	ErrInvalidSignatures = errors.New("invalid signatures")

	// ErrInsufficientSignatures is returned when fewer signatures than the
	// current quorum are supplied. It is deliberately distinct from
	// ErrInvalidSignatures.
	ErrInsufficientSignatures = errors.New("insufficient signatures")

	// ErrExecutionFailed is returned when the external target signalled
	// failure. The callee's error is attached to the message.
	ErrExecutionFailed = errors.New("execution failed")
)

// Topics on which the wallet publishes events when a Bus is configured.
const (
	TopicExecuted      = "multisig:executed"
	TopicQuorumUpdated = "multisig:quorum_updated"
	TopicSignerUpdated = "multisig:signer_updated"
)

type ExecutedEvent struct {
	Nonce   uint64
	Target  common.Address
	Value   *big.Int
	Payload []byte
}

type QuorumUpdatedEvent struct {
	Nonce     uint64
	NewQuorum int
}

type SignerUpdatedEvent struct {
	Nonce  uint64
	Signer common.Address
	Trust  bool
}
