// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/luxfi/multisig/record"
)

// View is an external observer's reconstruction of wallet state. The wallet
// never enumerates its trusted set; replaying the event journal is how "who
// is currently trusted" is recovered off-platform.
type View struct {
	Trusted   map[common.Address]bool
	Quorum    int
	NextNonce uint64
}

// Replay folds an event-record history on top of the construction-time signer
// set and quorum.
func Replay(signers []common.Address, quorum int, records []record.Record) (View, error) {
	view := View{
		Trusted:   make(map[common.Address]bool, len(signers)),
		Quorum:    quorum,
		NextNonce: 1,
	}
	for _, signer := range signers {
		view.Trusted[signer] = true
	}

	for i, rec := range records {
		switch rec.Type {
		case record.SignerUpdatedRecordType:
			var ev record.SignerUpdated
			if err := ev.FromRecord(&rec); err != nil {
				return View{}, fmt.Errorf("record %d: %w", i, err)
			}
			if ev.Trust {
				view.Trusted[ev.Signer] = true
			} else {
				delete(view.Trusted, ev.Signer)
			}
			view.NextNonce = ev.Nonce + 1
		case record.QuorumUpdatedRecordType:
			var ev record.QuorumUpdated
			if err := ev.FromRecord(&rec); err != nil {
				return View{}, fmt.Errorf("record %d: %w", i, err)
			}
			view.Quorum = int(ev.NewQuorum)
			view.NextNonce = ev.Nonce + 1
		case record.ExecutedRecordType:
			var ev record.Executed
			if err := ev.FromRecord(&rec); err != nil {
				return View{}, fmt.Errorf("record %d: %w", i, err)
			}
			view.NextNonce = ev.Nonce + 1
		default:
			return View{}, fmt.Errorf("record %d: unknown record type %d", i, rec.Type)
		}
	}

	return view, nil
}
