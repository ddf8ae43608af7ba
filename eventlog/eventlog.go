// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eventlog

import (
	"fmt"
	"io"
	"os"

	"github.com/luxfi/multisig/record"
)

const (
	logFlags       = os.O_APPEND | os.O_CREATE | os.O_RDWR
	logPermissions = 0666
)

// Log is a file-backed append-only event journal.
type Log struct {
	file *os.File
}

// Open opens an event log file, creating one if necessary.
// Call Close() on the Log to ensure the file is closed after use.
func Open(fileName string) (*Log, error) {
	file, err := os.OpenFile(fileName, logFlags, logPermissions)
	if err != nil {
		return nil, err
	}

	return &Log{
		file: file,
	}, nil
}

// Append appends a record to the log, flushing the OS cache so that an
// acknowledged record survives a crash.
func (l *Log) Append(r *record.Record) error {
	if _, err := l.file.Write(r.Bytes()); err != nil {
		return err
	}

	return l.file.Sync()
}

// ReadAll returns every record in the log in append order. A corrupt tail is
// truncated away and the records before it are returned.
func (l *Log) ReadAll() ([]record.Record, error) {
	if _, err := l.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("error seeking to start: %w", err)
	}

	fileInfo, err := l.file.Stat()
	if err != nil {
		return nil, fmt.Errorf("error getting file info: %w", err)
	}

	records := []record.Record{}
	bytesToRead := fileInfo.Size()

	for bytesToRead > 0 {
		var rec record.Record
		bytesRead, err := rec.FromBytes(l.file)
		if err != nil {
			return records, l.truncateAt(fileInfo.Size() - bytesToRead)
		}

		bytesToRead -= int64(bytesRead)
		records = append(records, rec)
	}

	return records, nil
}

func (l *Log) Truncate() error {
	return l.truncateAt(0)
}

func (l *Log) truncateAt(offset int64) error {
	if err := l.file.Truncate(offset); err != nil {
		return err
	}

	return l.file.Sync()
}

func (l *Log) Close() error {
	return l.file.Close()
}
