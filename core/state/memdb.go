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

// MemoryDatabase is a trivial map-backed Database, the fixture of choice
// for opcode and journal unit tests where a disk-backed store would only
// add noise.
type MemoryDatabase struct {
	accounts map[common.Address]AccountInfo
	code     map[common.Hash]*vm.Bytecode
	storage  map[common.Address]map[common.Hash]uint256.Int
	blocks   map[uint64]common.Hash
}

// NewMemoryDatabase returns an empty MemoryDatabase.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		accounts: make(map[common.Address]AccountInfo),
		code:     make(map[common.Hash]*vm.Bytecode),
		storage:  make(map[common.Address]map[common.Hash]uint256.Int),
		blocks:   make(map[uint64]common.Hash),
	}
}

func (m *MemoryDatabase) Basic(addr common.Address) (AccountInfo, bool) {
	info, ok := m.accounts[addr]
	return info, ok
}

func (m *MemoryDatabase) CodeByHash(hash common.Hash) (*vm.Bytecode, bool) {
	code, ok := m.code[hash]
	return code, ok
}

func (m *MemoryDatabase) Storage(addr common.Address, key common.Hash) uint256.Int {
	if slots, ok := m.storage[addr]; ok {
		return slots[key]
	}
	return uint256.Int{}
}

// SetStorage installs a persisted storage value, for test setup.
func (m *MemoryDatabase) SetStorage(addr common.Address, key common.Hash, value uint256.Int) {
	slots, ok := m.storage[addr]
	if !ok {
		slots = make(map[common.Hash]uint256.Int)
		m.storage[addr] = slots
	}
	slots[key] = value
}

func (m *MemoryDatabase) BlockHash(number uint64) (common.Hash, bool) {
	h, ok := m.blocks[number]
	return h, ok
}

// SetAccount installs addr's account info, for test setup.
func (m *MemoryDatabase) SetAccount(addr common.Address, info AccountInfo) {
	m.accounts[addr] = info
}

// SetCode installs code under its Keccak-256 hash, for test setup.
func (m *MemoryDatabase) SetCode(hash common.Hash, code *vm.Bytecode) {
	m.code[hash] = code
}

// SetBlockHash installs a historical block's hash, for test setup.
func (m *MemoryDatabase) SetBlockHash(number uint64, hash common.Hash) {
	m.blocks[number] = hash
}
