// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// SortSignatures orders sigs in place, ascending by recovered signer, which
// is the order verifyQuorum requires. Callers assembling a submission from
// independently collected signatures run this before calling the wallet.
func SortSignatures(r Recoverer, digest common.Hash, sigs []Signature) error {
	signers := make(map[Signature]common.Address, len(sigs))
	for _, sig := range sigs {
		signer, err := r.Recover(digest, sig)
		if err != nil {
			return fmt.Errorf("cannot recover signer of %s: %w", sig, err)
		}
		signers[sig] = signer
	}

	slices.SortFunc(sigs, func(i, j Signature) int {
		si, sj := signers[i], signers[j]
		return bytes.Compare(si[:], sj[:])
	})

	return nil
}
