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
	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/core/vm"
)

// Database is the read-only backing store a JournaledState consults on the
// first access to an address, code hash or storage slot within a
// transaction; everything after that is served from the in-memory journal.
// It deliberately knows nothing about journaling, checkpoints or gas - it
// is a pure lookup surface, swappable between an in-memory fixture and a
// disk-backed implementation without touching the engine.
type Database interface {
	// Basic returns an address's account info and whether it exists.
	Basic(addr common.Address) (AccountInfo, bool)
	// CodeByHash resolves a code hash to its bytecode.
	CodeByHash(hash common.Hash) (*vm.Bytecode, bool)
	// Storage returns the persisted value of a storage slot, or zero if unset.
	Storage(addr common.Address, key common.Hash) uint256.Int
	// BlockHash resolves a historical block number to its hash, for BLOCKHASH.
	BlockHash(number uint64) (common.Hash, bool)
}
