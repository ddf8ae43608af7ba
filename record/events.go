// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package record

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Event payloads are fixed-offset binary encodings. Each one opens with the
// nonce the action was applied under, so a replayed history orders itself.
const (
	eventNonceLen   = 8
	eventAddressLen = common.AddressLength
	eventTrustLen   = 1
	eventQuorumLen  = 8
	eventWordLen    = common.HashLength

	signerUpdatedLen = eventNonceLen + eventAddressLen + eventTrustLen
	quorumUpdatedLen = eventNonceLen + eventQuorumLen
	executedLen      = eventNonceLen + eventAddressLen + eventWordLen + eventWordLen
)

type SignerUpdated struct {
	Nonce  uint64
	Signer common.Address
	Trust  bool
}

func (s *SignerUpdated) Record() *Record {
	buff := make([]byte, signerUpdatedLen)
	var pos int

	binary.BigEndian.PutUint64(buff[pos:], s.Nonce)
	pos += eventNonceLen

	copy(buff[pos:], s.Signer[:])
	pos += eventAddressLen

	if s.Trust {
		buff[pos] = 1
	}

	return &Record{Type: SignerUpdatedRecordType, Payload: buff}
}

func (s *SignerUpdated) FromRecord(r *Record) error {
	if r.Type != SignerUpdatedRecordType {
		return fmt.Errorf("expected record type %d, got %d", SignerUpdatedRecordType, r.Type)
	}
	if len(r.Payload) != signerUpdatedLen {
		return fmt.Errorf("invalid payload length %d, expected %d", len(r.Payload), signerUpdatedLen)
	}

	var pos int

	s.Nonce = binary.BigEndian.Uint64(r.Payload[pos:])
	pos += eventNonceLen

	copy(s.Signer[:], r.Payload[pos:])
	pos += eventAddressLen

	s.Trust = r.Payload[pos] == 1

	return nil
}

type QuorumUpdated struct {
	Nonce     uint64
	NewQuorum uint64
}

func (q *QuorumUpdated) Record() *Record {
	buff := make([]byte, quorumUpdatedLen)

	binary.BigEndian.PutUint64(buff, q.Nonce)
	binary.BigEndian.PutUint64(buff[eventNonceLen:], q.NewQuorum)

	return &Record{Type: QuorumUpdatedRecordType, Payload: buff}
}

func (q *QuorumUpdated) FromRecord(r *Record) error {
	if r.Type != QuorumUpdatedRecordType {
		return fmt.Errorf("expected record type %d, got %d", QuorumUpdatedRecordType, r.Type)
	}
	if len(r.Payload) != quorumUpdatedLen {
		return fmt.Errorf("invalid payload length %d, expected %d", len(r.Payload), quorumUpdatedLen)
	}

	q.Nonce = binary.BigEndian.Uint64(r.Payload)
	q.NewQuorum = binary.BigEndian.Uint64(r.Payload[eventNonceLen:])

	return nil
}

// Executed journals an authorized external call. The call payload enters by
// hash to keep records fixed-size; replayers that need the full payload must
// obtain it out-of-band.
type Executed struct {
	Nonce       uint64
	Target      common.Address
	Value       common.Hash
	PayloadHash common.Hash
}

func (e *Executed) Record() *Record {
	buff := make([]byte, executedLen)
	var pos int

	binary.BigEndian.PutUint64(buff[pos:], e.Nonce)
	pos += eventNonceLen

	copy(buff[pos:], e.Target[:])
	pos += eventAddressLen

	copy(buff[pos:], e.Value[:])
	pos += eventWordLen

	copy(buff[pos:], e.PayloadHash[:])

	return &Record{Type: ExecutedRecordType, Payload: buff}
}

func (e *Executed) FromRecord(r *Record) error {
	if r.Type != ExecutedRecordType {
		return fmt.Errorf("expected record type %d, got %d", ExecutedRecordType, r.Type)
	}
	if len(r.Payload) != executedLen {
		return fmt.Errorf("invalid payload length %d, expected %d", len(r.Payload), executedLen)
	}

	var pos int

	e.Nonce = binary.BigEndian.Uint64(r.Payload[pos:])
	pos += eventNonceLen

	copy(e.Target[:], r.Payload[pos:])
	pos += eventAddressLen

	copy(e.Value[:], r.Payload[pos:])
	pos += eventWordLen

	copy(e.PayloadHash[:], r.Payload[pos:])

	return nil
}
