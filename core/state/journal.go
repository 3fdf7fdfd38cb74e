// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package state

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/core/vm"
)

var (
	ErrNonExistentAccount = errors.New("journal: account does not exist")
	ErrInvalidStorageKey  = errors.New("journal: invalid storage key")
	ErrOutOfFunds         = errors.New("journal: insufficient balance for transfer")
	ErrOverflowPayment    = errors.New("journal: balance overflow on payment")
	ErrCreateCollision    = errors.New("journal: contract creation collides with existing account")
	ErrBalanceOverflow    = errors.New("journal: balance overflow")
	ErrNonceOverflow      = errors.New("journal: nonce at max u64")
)

// journalEntryKind discriminates the ten reversible mutations the journal
// can record. Every entry knows how to undo itself; revertCheckpoint
// replays them in LIFO order.
type journalEntryKind uint8

const (
	entryAccountWarmed journalEntryKind = iota
	entryAccountTouched
	entryNonceChanged
	entryBalanceTransfer
	entryAccountCreated
	entryStorageWarmed
	entryStorageChanged
	entryTransientStorageChanged
	entryCodeChanged
	entryAccountDestroyed
)

// journalEntry is one reversible mutation. Only the fields relevant to Kind
// are populated; undo() switches on Kind to know which to use.
type journalEntry struct {
	kind journalEntryKind

	address common.Address
	target  common.Address // balance_transfer / account_destroyed recipient

	key      common.Hash // storage_changed / transient_storage_changed
	prevWord uint256.Int // storage_changed / transient_storage_changed: value before the write

	amount uint256.Int // balance_transfer: amount moved from address to target

	hadValue bool // account_destroyed: whether address carried a balance to move
}

// JournalCheckpoint is an opaque marker returned by Checkpoint, consumed by
// CommitCheckpoint or RevertCheckpoint.
type JournalCheckpoint struct {
	journalDepth   int
	logsCheckpoint int
}

// JournaledState is the checkpointed world-state store the engine mutates
// through a Host. Frames is a stack of journal entry slices, one per open
// checkpoint depth; Accounts is the working set of every account touched
// this transaction; Database is consulted only on first access to an
// address, code hash or storage slot.
type JournaledState struct {
	spec     SpecId
	database Database

	accounts map[common.Address]*Account
	frames   [][]journalEntry
	depth    int

	transient map[transientKey]uint256.Int
	logs      []vm.LogEvent

	// warmPreloaded records which addresses an EIP-2930 access list warmed
	// before execution started; membership is informational (actual warmth
	// lives on Account.Status/Account.Storage) and, unlike every other warm
	// flip, is never reverted by a checkpoint.
	warmPreloaded mapset.Set[common.Address]
}

type transientKey struct {
	addr common.Address
	key  common.Hash
}

// SpecId is a local alias so this package does not need to import params
// just to thread the active hardfork through CANCUN-gated behavior; the
// engine's params.SpecId value converts to this one at the Host boundary.
type SpecId = uint8

// New returns a JournaledState with one open (depth 0) frame, backed by db.
func New(db Database, spec SpecId) *JournaledState {
	return &JournaledState{
		spec:          spec,
		database:      db,
		accounts:      make(map[common.Address]*Account),
		frames:        [][]journalEntry{{}},
		transient:     make(map[transientKey]uint256.Int),
		warmPreloaded: mapset.NewSet[common.Address](),
	}
}

// PreloadAccessList warms sender, target (if the transaction calls rather
// than creates) and every EIP-2930 access-list entry before the first
// instruction runs. This warmth is permanent for the transaction: it is
// applied outside any checkpoint frame, so reverting to depth 0 never
// un-warms a preloaded address or slot.
func (j *JournaledState) PreloadAccessList(sender common.Address, target common.Address, hasTarget bool, list []vm.AccessListItem) {
	j.warmPreloaded.Add(sender)
	senderAcc, _ := j.getOrLoad(sender)
	senderAcc.Status |= StatusWarm

	if hasTarget {
		j.warmPreloaded.Add(target)
		targetAcc, _ := j.getOrLoad(target)
		targetAcc.Status |= StatusWarm
	}

	for _, item := range list {
		j.warmPreloaded.Add(item.Address)
		acc, _ := j.getOrLoad(item.Address)
		acc.Status |= StatusWarm
		for _, key := range item.StorageKeys {
			j.slot(item.Address, acc, key)
		}
	}
}

// IsPreloaded reports whether addr was warmed by the transaction's access
// list (or as sender/target), independent of any mid-transaction warming.
func (j *JournaledState) IsPreloaded(addr common.Address) bool {
	return j.warmPreloaded.Contains(addr)
}

// UpdateSpecId switches hardfork-gated behavior mid-life, as test harnesses do.
func (j *JournaledState) UpdateSpecId(spec SpecId) { j.spec = spec }

func (j *JournaledState) current() []journalEntry { return j.frames[len(j.frames)-1] }

func (j *JournaledState) append(e journalEntry) {
	j.frames[len(j.frames)-1] = append(j.frames[len(j.frames)-1], e)
}

// Checkpoint opens a new reversible frame and increments call depth.
func (j *JournaledState) Checkpoint() JournalCheckpoint {
	j.frames = append(j.frames, nil)
	j.depth++
	return JournalCheckpoint{journalDepth: len(j.frames) - 1, logsCheckpoint: len(j.logs)}
}

// CommitCheckpoint folds the topmost frame into the one below it: the
// entries survive (so an enclosing revert still undoes them) but the
// checkpoint boundary itself disappears.
func (j *JournaledState) CommitCheckpoint() {
	n := len(j.frames)
	if n < 2 {
		j.depth--
		return
	}
	top := j.frames[n-1]
	j.frames[n-2] = append(j.frames[n-2], top...)
	j.frames = j.frames[:n-1]
	j.depth--
}

// RevertCheckpoint pops frames down to cp's depth, undoing every entry
// recorded since cp in LIFO order, and truncates the log buffer back to
// cp's checkpoint.
func (j *JournaledState) RevertCheckpoint(cp JournalCheckpoint) error {
	for len(j.frames) > cp.journalDepth {
		n := len(j.frames)
		frame := j.frames[n-1]
		for i := len(frame) - 1; i >= 0; i-- {
			if err := j.undo(frame[i]); err != nil {
				return err
			}
		}
		j.frames = j.frames[:n-1]
	}
	j.logs = j.logs[:cp.logsCheckpoint]
	j.depth = cp.journalDepth - 1
	if j.depth < 0 {
		j.depth = 0
	}
	return nil
}

func (j *JournaledState) undo(e journalEntry) error {
	acc := j.accounts[e.address]
	switch e.kind {
	case entryAccountWarmed:
		if acc == nil {
			return ErrNonExistentAccount
		}
		acc.Status &^= StatusWarm
	case entryAccountTouched:
		if acc == nil {
			return ErrNonExistentAccount
		}
		acc.Status &^= StatusTouched
	case entryNonceChanged:
		if acc == nil {
			return ErrNonExistentAccount
		}
		acc.Info.Nonce--
	case entryBalanceTransfer:
		if acc == nil {
			return ErrNonExistentAccount
		}
		to := j.accounts[e.target]
		if to == nil {
			return ErrNonExistentAccount
		}
		acc.Info.Balance.Add(&acc.Info.Balance, &e.amount)
		to.Info.Balance.Sub(&to.Info.Balance, &e.amount)
	case entryAccountCreated:
		if acc == nil {
			return ErrNonExistentAccount
		}
		acc.Status &^= StatusCreated
	case entryStorageWarmed:
		if acc == nil {
			return ErrNonExistentAccount
		}
		if _, ok := acc.Storage[e.key]; !ok {
			return ErrInvalidStorageKey
		}
		delete(acc.Storage, e.key)
	case entryStorageChanged:
		if acc == nil {
			return ErrNonExistentAccount
		}
		slot, ok := acc.Storage[e.key]
		if !ok {
			return ErrInvalidStorageKey
		}
		slot.PresentValue = e.prevWord
	case entryTransientStorageChanged:
		j.transient[transientKey{e.address, e.key}] = e.prevWord
	case entryCodeChanged:
		// Code changes are idempotent per frame for our purposes: undo
		// restores the empty-code state set_code overwrote. Full
		// pre-image restoration is handled by the caller reloading from
		// the database, since code is content-addressed by its hash.
		if acc == nil {
			return ErrNonExistentAccount
		}
		acc.Info.Code = nil
		acc.Info.CodeHash = EmptyCodeHash
	case entryAccountDestroyed:
		if acc == nil {
			return ErrNonExistentAccount
		}
		acc.Status &^= StatusSelfDestructed
		if e.hadValue {
			acc.Info.Balance.Add(&acc.Info.Balance, &e.amount)
			if to := j.accounts[e.target]; to != nil && e.target != e.address {
				to.Info.Balance.Sub(&to.Info.Balance, &e.amount)
			}
		}
	}
	return nil
}

// getOrLoad returns the in-memory Account for addr, pulling from the
// database and inserting a placeholder on first sight.
func (j *JournaledState) getOrLoad(addr common.Address) (*Account, bool) {
	if acc, ok := j.accounts[addr]; ok {
		return acc, false
	}
	acc := NewAccount()
	info, exists := j.database.Basic(addr)
	if exists {
		acc.Info = info
	} else {
		acc.Status |= StatusLoadedAsNotExisting
	}
	j.accounts[addr] = acc
	return acc, true
}

// LoadAccount returns the account at addr, warming it on first access this
// transaction.
func (j *JournaledState) LoadAccount(addr common.Address) (*Account, bool) {
	acc, firstSight := j.getOrLoad(addr)
	cold := firstSight || !acc.IsWarm()
	if cold {
		acc.Status |= StatusWarm
		j.append(journalEntry{kind: entryAccountWarmed, address: addr})
	}
	return acc, cold
}

// LoadCode is LoadAccount plus materialising Info.Code from the database
// when the account carries a non-empty code hash we haven't fetched yet.
func (j *JournaledState) LoadCode(addr common.Address) (*Account, bool) {
	acc, cold := j.LoadAccount(addr)
	if acc.Info.CodeHash != EmptyCodeHash && acc.Info.Code == nil {
		if code, ok := j.database.CodeByHash(acc.Info.CodeHash); ok {
			acc.Info.Code = code
		}
	}
	return acc, cold
}

// TouchAccount marks addr touched exactly once per transaction.
func (j *JournaledState) TouchAccount(addr common.Address) {
	acc, _ := j.getOrLoad(addr)
	if acc.IsTouched() {
		return
	}
	acc.Status |= StatusTouched
	j.append(journalEntry{kind: entryAccountTouched, address: addr})
}

// IncrementNonce increments addr's nonce, returning the new value, or false
// if the nonce is already at the u64 maximum.
func (j *JournaledState) IncrementNonce(addr common.Address) (uint64, bool) {
	acc, _ := j.getOrLoad(addr)
	if acc.Info.Nonce == ^uint64(0) {
		return 0, false
	}
	acc.Info.Nonce++
	j.append(journalEntry{kind: entryNonceChanged, address: addr})
	return acc.Info.Nonce, true
}

// Transfer moves value from `from` to `to`, touching both accounts.
func (j *JournaledState) Transfer(from, to common.Address, value uint256.Int) error {
	fromAcc, _ := j.getOrLoad(from)
	toAcc, _ := j.getOrLoad(to)
	if fromAcc.IsNonExistent() && !value.IsZero() {
		return ErrNonExistentAccount
	}
	if fromAcc.Info.Balance.Lt(&value) {
		return ErrOutOfFunds
	}
	sum := new(uint256.Int).Add(&toAcc.Info.Balance, &value)
	if sum.Lt(&toAcc.Info.Balance) {
		return ErrOverflowPayment
	}
	fromAcc.Info.Balance.Sub(&fromAcc.Info.Balance, &value)
	toAcc.Info.Balance.Add(&toAcc.Info.Balance, &value)
	j.TouchAccount(from)
	j.TouchAccount(to)
	j.append(journalEntry{kind: entryBalanceTransfer, address: from, target: to, amount: value})
	return nil
}

// CreateAccountCheckpoint performs the collision/balance checks and the
// three bookkeeping entries (created, transfer, touched) CREATE/CREATE2
// need as a single atomic unit, returning a checkpoint positioned before
// them so a failed deployment can unwind the whole step together.
func (j *JournaledState) CreateAccountCheckpoint(caller, target common.Address, balance uint256.Int) (JournalCheckpoint, error) {
	targetAcc, _ := j.getOrLoad(target)
	if targetAcc.Info.Nonce != 0 || (targetAcc.Info.CodeHash != (common.Hash{}) && targetAcc.Info.CodeHash != EmptyCodeHash) {
		return JournalCheckpoint{}, ErrCreateCollision
	}
	callerAcc, _ := j.getOrLoad(caller)
	if callerAcc.Info.Balance.Lt(&balance) {
		return JournalCheckpoint{}, ErrOutOfFunds
	}
	sum := new(uint256.Int).Add(&targetAcc.Info.Balance, &balance)
	if sum.Lt(&targetAcc.Info.Balance) {
		return JournalCheckpoint{}, ErrBalanceOverflow
	}
	cp := j.Checkpoint()
	targetAcc.Status |= StatusCreated
	j.append(journalEntry{kind: entryAccountCreated, address: target})
	callerAcc.Info.Balance.Sub(&callerAcc.Info.Balance, &balance)
	targetAcc.Info.Balance.Add(&targetAcc.Info.Balance, &balance)
	j.append(journalEntry{kind: entryBalanceTransfer, address: caller, target: target, amount: balance})
	j.TouchAccount(target)
	return cp, nil
}

func (j *JournaledState) slot(addr common.Address, acc *Account, key common.Hash) (*StorageSlot, bool) {
	if s, ok := acc.Storage[key]; ok {
		return s, false
	}
	value := j.database.Storage(addr, key)
	s := &StorageSlot{OriginalValue: value, PresentValue: value}
	acc.Storage[key] = s
	return s, true
}

// SLoad returns the current value of addr's storage at key, warming the
// slot on first access this transaction.
func (j *JournaledState) SLoad(addr common.Address, key common.Hash) (uint256.Int, bool) {
	acc, _ := j.getOrLoad(addr)
	s, firstSight := j.slot(addr, acc, key)
	if firstSight {
		j.append(journalEntry{kind: entryStorageWarmed, address: addr, key: key})
	}
	return s.PresentValue, firstSight
}

// SStore writes new at addr's storage key, returning the full before/after
// picture the gas/refund formula needs.
func (j *JournaledState) SStore(addr common.Address, key common.Hash, newValue uint256.Int) (vm.SStoreResult, bool, error) {
	acc, _ := j.getOrLoad(addr)
	s, firstSight := j.slot(addr, acc, key)
	prev := s.PresentValue
	if prev != newValue {
		s.PresentValue = newValue
		j.append(journalEntry{kind: entryStorageChanged, address: addr, key: key, prevWord: prev})
	}
	return vm.SStoreResult{
		OriginalValue: s.OriginalValue,
		PresentValue:  prev,
		NewValue:      newValue,
		IsCold:        firstSight,
	}, firstSight, nil
}

// TLoad reads addr's transient storage at key (EIP-1153); unset slots read
// as zero and are never charged a cold surcharge.
func (j *JournaledState) TLoad(addr common.Address, key common.Hash) uint256.Int {
	return j.transient[transientKey{addr, key}]
}

// TStore writes addr's transient storage at key, journaling the prior value.
func (j *JournaledState) TStore(addr common.Address, key common.Hash, value uint256.Int) {
	k := transientKey{addr, key}
	prev := j.transient[k]
	j.transient[k] = value
	j.append(journalEntry{kind: entryTransientStorageChanged, address: addr, key: key, prevWord: prev})
}

// SetCode installs code on addr along with the code hash the caller supplies.
func (j *JournaledState) SetCode(addr common.Address, codeHash common.Hash, code *vm.Bytecode) {
	acc, _ := j.getOrLoad(addr)
	acc.Info.Code = code
	acc.Info.CodeHash = codeHash
	j.append(journalEntry{kind: entryCodeChanged, address: addr})
}

// SelfDestruct transfers addr's balance to target and marks addr destroyed.
// Under CANCUN, a self-transfer (addr == target) only zeroes the balance if
// addr was created within this transaction; otherwise the balance survives.
func (j *JournaledState) SelfDestruct(addr, target common.Address, cancun bool) (vm.SelfDestructResult, error) {
	acc, _ := j.getOrLoad(addr)
	toAcc, coldTarget := j.getOrLoad(target)
	targetExisted := !toAcc.IsNonExistent()

	balance := acc.Info.Balance
	hadValue := !balance.IsZero()
	selfTransfer := addr == target

	if selfTransfer && cancun && !acc.IsCreated() {
		// balance retained: no transfer performed.
	} else if hadValue {
		if !selfTransfer {
			toAcc.Info.Balance.Add(&toAcc.Info.Balance, &balance)
		}
		acc.Info.Balance.SetUint64(0)
	}

	wasDestructed := acc.IsSelfDestructed()
	acc.Status |= StatusSelfDestructed
	j.append(journalEntry{
		kind: entryAccountDestroyed, address: addr, target: target,
		amount: balance, hadValue: hadValue && !(selfTransfer && cancun && !acc.IsCreated()),
	})
	j.TouchAccount(target)

	return vm.SelfDestructResult{
		HadValue:             hadValue,
		TargetExisted:        targetExisted,
		IsCold:               coldTarget,
		PreviouslyDestructed: wasDestructed,
	}, nil
}

// Log appends event to the transaction's log buffer. Log emission is never
// undone by a journal entry; RevertCheckpoint truncates the buffer instead.
func (j *JournaledState) Log(event vm.LogEvent) {
	j.logs = append(j.logs, event)
}

// Logs returns every log emitted so far, in emission order.
func (j *JournaledState) Logs() []vm.LogEvent { return j.logs }

// Depth returns the current checkpoint nesting depth.
func (j *JournaledState) Depth() int { return j.depth }
