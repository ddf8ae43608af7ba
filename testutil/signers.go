// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutil

import (
	"bytes"
	"crypto/ecdsa"
	"slices"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/multisig"
)

// Signer is an off-platform identity that approves actions by signing their
// digests.
type Signer struct {
	Address common.Address

	key *ecdsa.PrivateKey
}

func NewSigner(t *testing.T) *Signer {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	return &Signer{
		Address: crypto.PubkeyToAddress(key.PublicKey),
		key:     key,
	}
}

func (s *Signer) Sign(t *testing.T, digest common.Hash) multisig.Signature {
	raw, err := crypto.Sign(digest[:], s.key)
	require.NoError(t, err)
	require.Len(t, raw, multisig.SignatureLen)

	var sig multisig.Signature
	copy(sig[:], raw)
	return sig
}

// NewSignerSet generates n signers sorted ascending by address, so that
// signing in set order yields a submission the wallet accepts.
func NewSignerSet(t *testing.T, n int) []*Signer {
	signers := make([]*Signer, 0, n)
	for i := 0; i < n; i++ {
		signers = append(signers, NewSigner(t))
	}

	return SortSet(signers)
}

// SortSet orders signers in place, ascending by address, and returns the
// slice for convenience.
func SortSet(signers []*Signer) []*Signer {
	slices.SortFunc(signers, func(i, j *Signer) int {
		return bytes.Compare(i.Address[:], j.Address[:])
	})
	return signers
}

func Addresses(signers []*Signer) []common.Address {
	addrs := make([]common.Address, 0, len(signers))
	for _, signer := range signers {
		addrs = append(addrs, signer.Address)
	}
	return addrs
}

// SignAll has every signer sign the digest, in the given order.
func SignAll(t *testing.T, digest common.Hash, signers ...*Signer) []multisig.Signature {
	sigs := make([]multisig.Signature, 0, len(signers))
	for _, signer := range signers {
		sigs = append(sigs, signer.Sign(t, digest))
	}
	return sigs
}
