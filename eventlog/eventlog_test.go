// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eventlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/multisig/record"
)

func testRecords(n int) []*record.Record {
	records := make([]*record.Record, 0, n)
	for i := 0; i < n; i++ {
		ev := record.SignerUpdated{Nonce: uint64(i + 1), Trust: i%2 == 0}
		records = append(records, ev.Record())
	}
	return records
}

func TestLogAppendReadAll(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "events.log")

	log, err := Open(fileName)
	require.NoError(t, err)
	defer log.Close()

	records, err := log.ReadAll()
	require.NoError(t, err)
	require.Empty(t, records)

	in := testRecords(3)
	for _, rec := range in {
		require.NoError(t, log.Append(rec))
	}

	records, err = log.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		require.Equal(t, *in[i], rec)
	}
}

func TestLogSurvivesReopen(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "events.log")

	log, err := Open(fileName)
	require.NoError(t, err)

	in := testRecords(2)
	for _, rec := range in {
		require.NoError(t, log.Append(rec))
	}
	require.NoError(t, log.Close())

	log, err = Open(fileName)
	require.NoError(t, err)
	defer log.Close()

	records, err := log.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestLogTruncatesCorruptTail(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "events.log")

	log, err := Open(fileName)
	require.NoError(t, err)

	in := testRecords(2)
	for _, rec := range in {
		require.NoError(t, log.Append(rec))
	}
	require.NoError(t, log.Close())

	// Simulate a torn write at the end of the file.
	file, err := os.OpenFile(fileName, os.O_APPEND|os.O_WRONLY, 0666)
	require.NoError(t, err)
	_, err = file.Write([]byte{0xba, 0xad})
	require.NoError(t, err)
	require.NoError(t, file.Close())

	log, err = Open(fileName)
	require.NoError(t, err)
	defer log.Close()

	records, err := log.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// The tail was truncated away, so a second read is clean.
	records, err = log.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestLogTruncate(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "events.log")

	log, err := Open(fileName)
	require.NoError(t, err)
	defer log.Close()

	for _, rec := range testRecords(2) {
		require.NoError(t, log.Append(rec))
	}
	require.NoError(t, log.Truncate())

	records, err := log.ReadAll()
	require.NoError(t, err)
	require.Empty(t, records)
}
