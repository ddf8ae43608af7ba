// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Every field of a signing request is encoded as a 32 byte word, so that any
// off-platform signer can reproduce the digest bit-for-bit from the action
// fields and the nonce it observed. Dynamic payloads enter by hash.
const wordLen = common.HashLength

var (
	domainTypeHash = crypto.Keccak256Hash([]byte("MultisigDomain(string name,uint256 chainId,address verifyingContract)"))
	executeType    = crypto.Keccak256Hash([]byte("Execute(address target,uint256 value,bytes payload,uint256 nonce)"))
	quorumType     = crypto.Keccak256Hash([]byte("UpdateQuorum(uint256 newQuorum,uint256 nonce)"))
	signerType     = crypto.Keccak256Hash([]byte("UpdateSigner(address signer,bool trust,uint256 nonce)"))
)

// ComputeDomainSeparator binds all signatures to one deployment: same name on
// a different chain, or a different module address, yields unrelated digests.
func ComputeDomainSeparator(name string, chainID *big.Int, module common.Address) common.Hash {
	buff := make([]byte, 4*wordLen)
	var pos int

	copy(buff[pos:], domainTypeHash[:])
	pos += wordLen

	nameHash := crypto.Keccak256([]byte(name))
	copy(buff[pos:], nameHash)
	pos += wordLen

	copy(buff[pos:], common.BigToHash(chainID).Bytes())
	pos += wordLen

	copy(buff[pos:], common.LeftPadBytes(module.Bytes(), wordLen))

	return crypto.Keccak256Hash(buff)
}

func ExecuteDigest(domain common.Hash, target common.Address, value *big.Int, payload []byte, nonce uint64) common.Hash {
	if value == nil {
		value = new(big.Int)
	}

	buff := make([]byte, 5*wordLen)
	var pos int

	copy(buff[pos:], executeType[:])
	pos += wordLen

	copy(buff[pos:], common.LeftPadBytes(target.Bytes(), wordLen))
	pos += wordLen

	copy(buff[pos:], common.BigToHash(value).Bytes())
	pos += wordLen

	copy(buff[pos:], crypto.Keccak256(payload))
	pos += wordLen

	copy(buff[pos:], uintWord(nonce))

	return signingDigest(domain, crypto.Keccak256(buff))
}

func QuorumDigest(domain common.Hash, newQuorum uint64, nonce uint64) common.Hash {
	buff := make([]byte, 3*wordLen)
	var pos int

	copy(buff[pos:], quorumType[:])
	pos += wordLen

	copy(buff[pos:], uintWord(newQuorum))
	pos += wordLen

	copy(buff[pos:], uintWord(nonce))

	return signingDigest(domain, crypto.Keccak256(buff))
}

func SignerDigest(domain common.Hash, signer common.Address, trust bool, nonce uint64) common.Hash {
	buff := make([]byte, 4*wordLen)
	var pos int

	copy(buff[pos:], signerType[:])
	pos += wordLen

	copy(buff[pos:], common.LeftPadBytes(signer.Bytes(), wordLen))
	pos += wordLen

	if trust {
		buff[pos+wordLen-1] = 1
	}
	pos += wordLen

	copy(buff[pos:], uintWord(nonce))

	return signingDigest(domain, crypto.Keccak256(buff))
}

// signingDigest is what signers actually sign: the 0x19 0x01 prefix keeps the
// preimage from colliding with any other signed payload format.
func signingDigest(domain common.Hash, structHash []byte) common.Hash {
	buff := make([]byte, 2+2*wordLen)
	buff[0] = 0x19
	buff[1] = 0x01
	copy(buff[2:], domain[:])
	copy(buff[2+wordLen:], structHash)
	return crypto.Keccak256Hash(buff)
}

func uintWord(n uint64) []byte {
	buff := make([]byte, wordLen)
	binary.BigEndian.PutUint64(buff[wordLen-8:], n)
	return buff
}
