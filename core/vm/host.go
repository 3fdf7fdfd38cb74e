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

package vm

import (
	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/common"
)

// StateLoaded wraps any value a Host/JournaledState operation produces
// together with whether this was the access's first touch this
// transaction - the flag gas pricing needs for EIP-2929 cold/warm costs.
type StateLoaded[T any] struct {
	Data   T
	IsCold bool
}

// Loaded builds a StateLoaded value, a small convenience so call sites read
// as a single expression instead of a struct literal.
func Loaded[T any](data T, isCold bool) StateLoaded[T] {
	return StateLoaded[T]{Data: data, IsCold: isCold}
}

// AccountResult is what Host.LoadAccount reports about a CALL target before
// the call is priced: whether this is the first touch this transaction, and
// whether the account is "new" (did not exist, and so a CALL that transfers
// value into it owes the new-account surcharge).
type AccountResult struct {
	IsCold bool
	IsNew  bool
}

// SStoreResult carries everything SSTORE's gas/refund formula needs: the
// value at the start of the transaction, the value immediately before this
// write, and the value being written now.
type SStoreResult struct {
	OriginalValue uint256.Int
	PresentValue  uint256.Int
	NewValue      uint256.Int
	IsCold        bool
}

// SelfDestructResult reports whether this is the first SELFDESTRUCT of the
// account this transaction (for the one-time 5000 gas base cost and
// creation-within-this-tx bookkeeping) and whether the target was
// previously unknown (new-account surcharge, Tangerine..SpuriousDragon).
type SelfDestructResult struct {
	HadValue             bool
	TargetExisted        bool
	IsCold               bool
	PreviouslyDestructed bool
}

// LogEvent is an emitted log entry: the emitting address, its indexed
// topics and its opaque data payload.
type LogEvent struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// Host is the narrow capability surface the interpreter consumes to reach
// outside its own frame: account/storage/code queries and the handful of
// state-mutating calls (SSTORE, TSTORE, LOG, SELFDESTRUCT) that don't go
// through the journal's checkpoint/commit/revert machinery directly.
type Host interface {
	Balance(addr common.Address) (StateLoaded[uint256.Int], bool)
	BlockHash(number uint64) (common.Hash, bool)
	Code(addr common.Address) (StateLoaded[*Bytecode], bool)
	CodeHash(addr common.Address) (StateLoaded[common.Hash], bool)
	Environment() *Environment
	LoadAccount(addr common.Address) (AccountResult, bool)
	Log(event LogEvent) error
	SelfDestruct(addr, target common.Address) (StateLoaded[SelfDestructResult], error)
	SLoad(addr common.Address, key common.Hash) (StateLoaded[uint256.Int], error)
	SStore(addr common.Address, key common.Hash, value uint256.Int) (StateLoaded[SStoreResult], error)
	TLoad(addr common.Address, key common.Hash) uint256.Int
	TStore(addr common.Address, key common.Hash, value uint256.Int)
}
