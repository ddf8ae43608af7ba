// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	. "github.com/luxfi/multisig"
)

func TestDomainSeparatorBindsDeployment(t *testing.T) {
	base := ComputeDomainSeparator("vault", big.NewInt(1337), common.Address{0x01})

	for _, tt := range []struct {
		name   string
		domain common.Hash
	}{
		{
			name:   "different name",
			domain: ComputeDomainSeparator("vault2", big.NewInt(1337), common.Address{0x01}),
		},
		{
			name:   "different chain",
			domain: ComputeDomainSeparator("vault", big.NewInt(1), common.Address{0x01}),
		},
		{
			name:   "different module address",
			domain: ComputeDomainSeparator("vault", big.NewInt(1337), common.Address{0x02}),
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			require.NotEqual(t, base, tt.domain)
		})
	}

	require.Equal(t, base, ComputeDomainSeparator("vault", big.NewInt(1337), common.Address{0x01}))
}

func TestDigestBindsEveryField(t *testing.T) {
	domain := ComputeDomainSeparator("vault", big.NewInt(1337), common.Address{0x01})
	otherDomain := ComputeDomainSeparator("vault", big.NewInt(1), common.Address{0x01})

	target := common.Address{0xaa}
	value := big.NewInt(100)
	payload := []byte("withdraw")

	base := ExecuteDigest(domain, target, value, payload, 1)

	variants := []common.Hash{
		ExecuteDigest(otherDomain, target, value, payload, 1),
		ExecuteDigest(domain, common.Address{0xbb}, value, payload, 1),
		ExecuteDigest(domain, target, big.NewInt(101), payload, 1),
		ExecuteDigest(domain, target, value, []byte("withdraw!"), 1),
		ExecuteDigest(domain, target, value, payload, 2),
	}

	seen := map[common.Hash]struct{}{base: {}}
	for _, digest := range variants {
		_, collision := seen[digest]
		require.False(t, collision)
		seen[digest] = struct{}{}
	}

	require.Equal(t, base, ExecuteDigest(domain, target, value, payload, 1))
}

func TestDigestSeparatesActionKinds(t *testing.T) {
	domain := ComputeDomainSeparator("vault", big.NewInt(1337), common.Address{0x01})

	// A quorum update to 5 and a signer update about address 5 must never
	// produce the digest of any other action kind under the same nonce.
	quorum := QuorumDigest(domain, 5, 1)
	signer := SignerDigest(domain, common.Address{0x05}, true, 1)
	execute := ExecuteDigest(domain, common.Address{0x05}, big.NewInt(5), nil, 1)

	require.NotEqual(t, quorum, signer)
	require.NotEqual(t, quorum, execute)
	require.NotEqual(t, signer, execute)
}

func TestSignerDigestBindsTrustFlag(t *testing.T) {
	domain := ComputeDomainSeparator("vault", big.NewInt(1337), common.Address{0x01})

	grant := SignerDigest(domain, common.Address{0x05}, true, 1)
	revoke := SignerDigest(domain, common.Address{0x05}, false, 1)

	require.NotEqual(t, grant, revoke)
}
