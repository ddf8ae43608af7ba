// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eventlog

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/luxfi/multisig/record"
)

// MemLog is an in-memory event journal, for tests and embedders that replay
// within the same process.
type MemLog struct {
	lock sync.Mutex
	buff bytes.Buffer
}

func NewMemLog() *MemLog {
	return &MemLog{}
}

func (m *MemLog) Append(r *record.Record) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	_, err := m.buff.Write(r.Bytes())
	return err
}

func (m *MemLog) ReadAll() ([]record.Record, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	r := bytes.NewBuffer(m.buff.Bytes())

	var records []record.Record
	for r.Len() > 0 {
		var rec record.Record
		if _, err := rec.FromBytes(r); err != nil {
			return nil, fmt.Errorf("failed reading in-memory record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
