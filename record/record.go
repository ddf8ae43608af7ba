// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	recordVersionLen  = 1
	recordTypeLen     = 2
	recordSizeLen     = 4
	recordChecksumLen = 4

	recordHeaderLen = recordVersionLen + recordTypeLen + recordSizeLen

	recordVersionIndex  = 0
	recordTypeOffset    = recordVersionIndex + recordVersionLen
	recordSizeOffset    = recordTypeOffset + recordTypeLen
	recordPayloadOffset = recordSizeOffset + recordSizeLen

	// Event payloads are fixed-size encodings of a few words each; anything
	// larger than this indicates a corrupt or foreign stream.
	maxPayloadSize = 1 << 20
)

var ErrInvalidCRC = errors.New("invalid CRC checksum")

// Record is one framed entry of the event journal.
type Record struct {
	Version uint8
	Type    uint16
	Payload []byte
}

func (r *Record) Bytes() []byte {
	payloadLen := len(r.Payload)
	buff := make([]byte, recordHeaderLen+payloadLen+recordChecksumLen)

	buff[recordVersionIndex] = r.Version
	binary.BigEndian.PutUint16(buff[recordTypeOffset:], r.Type)
	binary.BigEndian.PutUint32(buff[recordSizeOffset:], uint32(payloadLen))
	copy(buff[recordPayloadOffset:], r.Payload)

	checksumOffset := recordPayloadOffset + payloadLen
	checksum := crc32.ChecksumIEEE(buff[:checksumOffset])
	binary.BigEndian.PutUint32(buff[checksumOffset:], checksum)

	return buff
}

func (r *Record) FromBytes(in io.Reader) (int, error) {
	header := make([]byte, recordHeaderLen)
	if _, err := io.ReadFull(in, header); err != nil {
		return 0, err
	}

	version := header[recordVersionIndex]
	recType := binary.BigEndian.Uint16(header[recordTypeOffset:])
	payloadLen := binary.BigEndian.Uint32(header[recordSizeOffset:])
	if payloadLen > maxPayloadSize {
		return 0, fmt.Errorf("record indicates payload is %d bytes long", payloadLen)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(in, payload); err != nil {
		return 0, err
	}

	checksum := make([]byte, recordChecksumLen)
	if _, err := io.ReadFull(in, checksum); err != nil {
		return 0, err
	}

	crc := crc32.NewIEEE()
	crc.Write(header)
	crc.Write(payload)

	expectedChecksum := make([]byte, 0, recordChecksumLen)
	expectedChecksum = crc.Sum(expectedChecksum)
	if !bytes.Equal(checksum, expectedChecksum) {
		return 0, ErrInvalidCRC
	}

	r.Version = version
	r.Type = recType
	r.Payload = payload

	totalSize := recordHeaderLen + len(payload) + recordChecksumLen
	return totalSize, nil
}
