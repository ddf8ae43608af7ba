// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package record

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	in := Record{
		Version: 1,
		Type:    SignerUpdatedRecordType,
		Payload: []byte{1, 2, 3, 4, 5},
	}

	raw := in.Bytes()

	var out Record
	n, err := out.FromBytes(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, len(raw), n)
	require.Equal(t, in, out)
}

func TestRecordDetectsCorruption(t *testing.T) {
	in := Record{
		Type:    QuorumUpdatedRecordType,
		Payload: []byte{1, 2, 3, 4, 5},
	}

	raw := in.Bytes()
	raw[len(raw)-1] ^= 0xff

	var out Record
	_, err := out.FromBytes(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrInvalidCRC)
}

func TestRecordRejectsOversizedPayload(t *testing.T) {
	in := Record{Type: ExecutedRecordType, Payload: []byte{1}}
	raw := in.Bytes()

	// Inflate the advertised payload size past the cap.
	raw[recordSizeOffset] = 0xff
	raw[recordSizeOffset+1] = 0xff
	raw[recordSizeOffset+2] = 0xff
	raw[recordSizeOffset+3] = 0xff

	var out Record
	_, err := out.FromBytes(bytes.NewReader(raw))
	require.Error(t, err)
}

func TestSignerUpdatedRoundTrip(t *testing.T) {
	in := SignerUpdated{
		Nonce:  7,
		Signer: common.Address{0xaa, 0xbb},
		Trust:  true,
	}

	var out SignerUpdated
	require.NoError(t, out.FromRecord(in.Record()))
	require.Equal(t, in, out)

	in.Trust = false
	require.NoError(t, out.FromRecord(in.Record()))
	require.Equal(t, in, out)
}

func TestQuorumUpdatedRoundTrip(t *testing.T) {
	in := QuorumUpdated{Nonce: 3, NewQuorum: 5}

	var out QuorumUpdated
	require.NoError(t, out.FromRecord(in.Record()))
	require.Equal(t, in, out)
}

func TestExecutedRoundTrip(t *testing.T) {
	in := Executed{
		Nonce:       9,
		Target:      common.Address{0x01},
		Value:       common.Hash{0x02},
		PayloadHash: common.Hash{0x03},
	}

	var out Executed
	require.NoError(t, out.FromRecord(in.Record()))
	require.Equal(t, in, out)
}

func TestEventDecodersRejectForeignRecords(t *testing.T) {
	signerRec := (&SignerUpdated{Nonce: 1}).Record()
	quorumRec := (&QuorumUpdated{Nonce: 1}).Record()

	var signer SignerUpdated
	require.Error(t, signer.FromRecord(quorumRec))

	var quorum QuorumUpdated
	require.Error(t, quorum.FromRecord(signerRec))

	var executed Executed
	require.Error(t, executed.FromRecord(signerRec))

	// A truncated payload is rejected even under the right type.
	bad := &Record{Type: SignerUpdatedRecordType, Payload: []byte{1, 2}}
	require.Error(t, signer.FromRecord(bad))
}
