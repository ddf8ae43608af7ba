// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SecpRecoverer is the production Recoverer: secp256k1 public key recovery
// with keccak-256 address derivation.
type SecpRecoverer struct{}

var _ Recoverer = SecpRecoverer{}

func (SecpRecoverer) Recover(digest common.Hash, sig Signature) (common.Address, error) {
	raw := make([]byte, SignatureLen)
	copy(raw, sig[:])

	// Wallet tooling emits recovery identifiers of 27/28
	if raw[SignatureLen-1] >= 27 {
		raw[SignatureLen-1] -= 27
	}

	pub, err := crypto.SigToPub(digest[:], raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("cannot recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}
