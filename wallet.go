// Copyright (C) 2019-2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/luxfi/multisig/record"
)

type Config struct {
	// Name, ChainID and Address fix the domain separator at construction.
	Name    string
	ChainID *big.Int
	Address common.Address

	// Signers is the initial trusted set, Quorum the initial number of valid
	// signatures every action requires. Quorum may exceed the size of the
	// trusted set; such a wallet cannot authorize anything until the operator
	// deploys a fresh one.
	Signers []common.Address
	Quorum  int

	Logger    Logger
	Recoverer Recoverer
	Invoker   Invoker

	// Bus, if set, receives one event per applied action.
	Bus EventBus.Bus
	// EventLog, if set, is appended one record per applied action.
	EventLog EventLog
}

// Wallet authorizes arbitrary actions once a quorum of trusted signers has
// signed their digest. All mutable state (trusted set, quorum, nonce) changes
// only inside a single verify-mutate-emit step under one lock, so every
// operation either fully applies or leaves no observable effect.
type Wallet struct {
	Config
	// Runtime
	lock            sync.Mutex
	domainSeparator common.Hash
	trusted         map[common.Address]struct{}
	quorum          int
	nonce           uint64
}

func NewWallet(conf Config) (*Wallet, error) {
	w := &Wallet{
		Config: conf,
	}
	return w, w.init()
}

func (w *Wallet) init() error {
	if w.Config.Name == "" {
		return errors.New("name must not be empty")
	}
	if w.Config.ChainID == nil {
		return errors.New("chain ID must not be nil")
	}
	if w.Config.Logger == nil {
		return errors.New("logger must not be nil")
	}
	if w.Config.Recoverer == nil {
		return errors.New("recoverer must not be nil")
	}
	if w.Config.Invoker == nil {
		return errors.New("invoker must not be nil")
	}
	if w.Config.Quorum < 1 {
		return fmt.Errorf("quorum must be at least 1, got %d", w.Config.Quorum)
	}

	w.trusted = make(map[common.Address]struct{}, len(w.Config.Signers))
	for _, signer := range w.Config.Signers {
		w.trusted[signer] = struct{}{}
	}

	w.quorum = w.Config.Quorum
	w.nonce = 1
	w.domainSeparator = ComputeDomainSeparator(w.Config.Name, w.Config.ChainID, w.Config.Address)

	w.Logger.Info("Initialized multisig wallet",
		zap.String("name", w.Config.Name),
		zap.Stringer("address", w.Config.Address),
		zap.Int("signers", len(w.trusted)),
		zap.Int("quorum", w.quorum))

	return nil
}

// Execute forwards value and payload to target once the supplied signatures
// meet quorum over the current nonce. The target and payload are not
// validated in any way; the signers are the only safeguard.
func (w *Wallet) Execute(target common.Address, value *big.Int, payload []byte, sigs []Signature) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if value == nil {
		value = new(big.Int)
	}

	digest := ExecuteDigest(w.domainSeparator, target, value, payload, w.nonce)
	if err := w.verifyQuorum(digest, sigs); err != nil {
		return err
	}

	if err := w.Invoker.Invoke(target, value, payload); err != nil {
		w.Logger.Debug("External call failed",
			zap.Stringer("target", target),
			zap.Uint64("nonce", w.nonce),
			zap.Error(err))
		return fmt.Errorf("%w: %s", ErrExecutionFailed, err)
	}

	nonce := w.advanceNonce()
	w.Logger.Info("Executed authorized call",
		zap.Stringer("target", target),
		zap.Uint64("nonce", nonce),
		zap.Int("payloadBytes", len(payload)))

	executed := &ExecutedEvent{Nonce: nonce, Target: target, Value: value, Payload: payload}
	w.publish(TopicExecuted, executed)
	w.journal(executedRecord(executed))

	return nil
}

// SetQuorum changes the number of signatures required for every subsequent
// action. The change itself must meet the quorum in effect before it.
func (w *Wallet) SetQuorum(newQuorum int, sigs []Signature) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if newQuorum < 1 {
		return fmt.Errorf("quorum must be at least 1, got %d", newQuorum)
	}

	digest := QuorumDigest(w.domainSeparator, uint64(newQuorum), w.nonce)
	if err := w.verifyQuorum(digest, sigs); err != nil {
		return err
	}

	w.quorum = newQuorum
	nonce := w.advanceNonce()
	w.Logger.Info("Updated quorum",
		zap.Int("quorum", newQuorum),
		zap.Uint64("nonce", nonce))

	updated := &QuorumUpdatedEvent{Nonce: nonce, NewQuorum: newQuorum}
	w.publish(TopicQuorumUpdated, updated)
	w.journal(quorumRecord(updated))

	return nil
}

// SetSigner adds signer to the trusted set, or removes it when trust is
// false. Removing an identity that is not trusted, or re-adding one that is,
// still consumes a nonce and emits an event.
func (w *Wallet) SetSigner(signer common.Address, trust bool, sigs []Signature) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	digest := SignerDigest(w.domainSeparator, signer, trust, w.nonce)
	if err := w.verifyQuorum(digest, sigs); err != nil {
		return err
	}

	if trust {
		w.trusted[signer] = struct{}{}
	} else {
		delete(w.trusted, signer)
	}
	nonce := w.advanceNonce()
	w.Logger.Info("Updated signer",
		zap.Stringer("signer", signer),
		zap.Bool("trust", trust),
		zap.Uint64("nonce", nonce))

	updated := &SignerUpdatedEvent{Nonce: nonce, Signer: signer, Trust: trust}
	w.publish(TopicSignerUpdated, updated)
	w.journal(signerRecord(updated))

	return nil
}

// Nonce returns the value signers must bind their next signatures to.
func (w *Wallet) Nonce() uint64 {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.nonce
}

func (w *Wallet) Quorum() int {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.quorum
}

func (w *Wallet) IsSigner(signer common.Address) bool {
	w.lock.Lock()
	defer w.lock.Unlock()
	_, trusted := w.trusted[signer]
	return trusted
}

// DomainSeparator is fixed at construction and safe to read concurrently.
func (w *Wallet) DomainSeparator() common.Hash {
	return w.domainSeparator
}

// verifyQuorum consults exactly the first quorum entries of sigs; extra
// entries are ignored. Each entry must recover to a trusted signer strictly
// greater, in byte order, than the previous one. Strict ascent is the sole
// deduplication mechanism, and makes the submission order part of the
// external protocol: callers sort their collected signatures by recovered
// signer before submitting.
func (w *Wallet) verifyQuorum(digest common.Hash, sigs []Signature) error {
	if len(sigs) < w.quorum {
		w.Logger.Debug("Not enough signatures supplied",
			zap.Int("count", len(sigs)),
			zap.Int("quorum", w.quorum))
		return fmt.Errorf("%w: got %d, need %d", ErrInsufficientSignatures, len(sigs), w.quorum)
	}

	// The zero address is the sentinel lower bound; no signature recovers to it.
	var previous common.Address
	for i := 0; i < w.quorum; i++ {
		signer, err := w.Recoverer.Recover(digest, sigs[i])
		if err != nil {
			w.Logger.Debug("Failed recovering signer",
				zap.Int("index", i),
				zap.Error(err))
			return fmt.Errorf("%w: signature %d: %s", ErrInvalidSignatures, i, err)
		}
		if _, trusted := w.trusted[signer]; !trusted {
			w.Logger.Debug("Recovered signer is not trusted",
				zap.Int("index", i),
				zap.Stringer("signer", signer))
			return fmt.Errorf("%w: %s is not a trusted signer", ErrInvalidSignatures, signer)
		}
		if bytes.Compare(previous[:], signer[:]) >= 0 {
			w.Logger.Debug("Recovered signers are not strictly ascending",
				zap.Int("index", i),
				zap.Stringer("signer", signer))
			return fmt.Errorf("%w: signers not in strictly ascending order", ErrInvalidSignatures)
		}
		previous = signer
	}

	return nil
}

func (w *Wallet) advanceNonce() uint64 {
	nonce := w.nonce
	w.nonce++
	return nonce
}

func (w *Wallet) publish(topic string, event any) {
	if w.Bus == nil {
		return
	}
	w.Bus.Publish(topic, event)
}

// A failed journal append must not unwind an action whose external effects
// already happened; the wallet state, not the journal, is the source of truth.
func (w *Wallet) journal(rec *record.Record) {
	if w.EventLog == nil {
		return
	}
	if err := w.EventLog.Append(rec); err != nil {
		w.Logger.Warn("Failed appending to event log", zap.Error(err))
	}
}

func executedRecord(ev *ExecutedEvent) *record.Record {
	rec := record.Executed{
		Nonce:       ev.Nonce,
		Target:      ev.Target,
		Value:       common.BigToHash(ev.Value),
		PayloadHash: crypto.Keccak256Hash(ev.Payload),
	}
	return rec.Record()
}

func quorumRecord(ev *QuorumUpdatedEvent) *record.Record {
	rec := record.QuorumUpdated{
		Nonce:     ev.Nonce,
		NewQuorum: uint64(ev.NewQuorum),
	}
	return rec.Record()
}

func signerRecord(ev *SignerUpdatedEvent) *record.Record {
	rec := record.SignerUpdated{
		Nonce:  ev.Nonce,
		Signer: ev.Signer,
		Trust:  ev.Trust,
	}
	return rec.Record()
}
