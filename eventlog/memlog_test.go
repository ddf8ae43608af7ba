// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eventlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemLogAppendReadAll(t *testing.T) {
	log := NewMemLog()

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

	// Reading is not destructive.
	records, err = log.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
}
