// Copyright 2014 The go-ethereum Authors
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

// Package state holds the journaled, checkpointed world state the
// interpreter reads and mutates through a Host: accounts, storage,
// transient storage and emitted logs, all reversible to any earlier
// checkpoint in one pass.
package state

import (
	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/core/vm"
)

// EmptyCodeHash is the Keccak-256 hash of the empty byte string, the
// code_hash every externally-owned account (and any newly-created account
// before CREATE deposits code) carries.
var EmptyCodeHash = common.HexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")

// AccountInfo is an account's chain-visible identity: its balance, nonce
// and code. code is nil for an externally-owned account or one that has
// not had its code materialised from the database yet.
type AccountInfo struct {
	Balance  uint256.Int
	Nonce    uint64
	CodeHash common.Hash
	Code     *vm.Bytecode
}

// IsEmpty reports the EIP-161 "empty account" predicate: zero balance,
// zero nonce, and no code.
func (a *AccountInfo) IsEmpty() bool {
	return a.Balance.IsZero() && a.Nonce == 0 && a.CodeHash == EmptyCodeHash
}

// StorageSlot tracks one key's value across a transaction: the value seen
// at the first load this transaction (needed by the SSTORE gas/refund
// formula) and its current value.
type StorageSlot struct {
	OriginalValue uint256.Int
	PresentValue  uint256.Int
}

// AccountStatus is a bitset of per-transaction flags the journal consults:
// whether the account has ever been touched, created within this
// transaction, marked for destruction, or already loaded into the warm set.
type AccountStatus uint8

const (
	StatusTouched AccountStatus = 1 << iota
	StatusCreated
	StatusSelfDestructed
	StatusLoadedAsNotExisting
	StatusWarm
)

func (s AccountStatus) has(flag AccountStatus) bool { return s&flag != 0 }

// Account is the full in-memory representation of one address: its info,
// its touched storage slots, and its per-transaction status flags.
type Account struct {
	Info    AccountInfo
	Storage map[common.Hash]*StorageSlot
	Status  AccountStatus
}

// NewAccount returns a freshly allocated, untouched Account.
func NewAccount() *Account {
	return &Account{Storage: make(map[common.Hash]*StorageSlot)}
}

func (a *Account) IsTouched() bool        { return a.Status.has(StatusTouched) }
func (a *Account) IsCreated() bool        { return a.Status.has(StatusCreated) }
func (a *Account) IsSelfDestructed() bool { return a.Status.has(StatusSelfDestructed) }
func (a *Account) IsWarm() bool           { return a.Status.has(StatusWarm) }
func (a *Account) IsNonExistent() bool    { return a.Status.has(StatusLoadedAsNotExisting) }
