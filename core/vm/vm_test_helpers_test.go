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
	"github.com/ethereum/go-evmcore/params"
)

// newOpInterpreter builds an Interpreter around a tiny, already-analyzed
// contract with a full gas tank, for tests that only exercise one pure
// stack/memory opcode at a time and never touch the host.
func newOpInterpreter(code []byte) *Interpreter {
	return newOpInterpreterWithHost(code, nil)
}

func newOpInterpreterWithHost(code []byte, host Host) *Interpreter {
	c := NewContract(common.Address{}, common.Address{}, uint256.Int{}, NewRawBytecode(code), common.Hash{}, nil)
	return NewInterpreter(c, host, InterpreterInitOptions{GasLimit: 10_000_000, SpecID: params.LATEST})
}

// pushWords loads the stack bottom-to-top, so the last entry ends up on top.
func pushWords(it *Interpreter, words ...*uint256.Int) {
	for _, w := range words {
		it.Stack.push(w)
	}
}

func u64(v uint64) *uint256.Int { return uint256.NewInt(v) }

// stubHost is a minimal, in-memory Host for opcode tests that need to read
// or write through the host surface without pulling in the journaled state
// package. Every balance/code/storage slot defaults to cold-on-first-touch,
// matching a fresh transaction's access-list state.
type stubHost struct {
	env         Environment
	balances    map[common.Address]uint256.Int
	code        map[common.Address]*Bytecode
	codeHash    map[common.Address]common.Hash
	storage     map[common.Address]map[common.Hash]uint256.Int
	transient   map[common.Address]map[common.Hash]uint256.Int
	touched     map[common.Address]bool
	slotTouched map[[2][32]byte]bool
	logs        []LogEvent
}

func newStubHost() *stubHost {
	return &stubHost{
		env:         Environment{Tx: TxEnvironment{GasPrice: *u64(1)}},
		balances:    map[common.Address]uint256.Int{},
		code:        map[common.Address]*Bytecode{},
		codeHash:    map[common.Address]common.Hash{},
		storage:     map[common.Address]map[common.Hash]uint256.Int{},
		transient:   map[common.Address]map[common.Hash]uint256.Int{},
		touched:     map[common.Address]bool{},
		slotTouched: map[[2][32]byte]bool{},
	}
}

func (h *stubHost) Balance(addr common.Address) (StateLoaded[uint256.Int], bool) {
	cold := !h.touched[addr]
	h.touched[addr] = true
	return Loaded(h.balances[addr], cold), true
}

func (h *stubHost) BlockHash(number uint64) (common.Hash, bool) { return common.Hash{}, false }

func (h *stubHost) Code(addr common.Address) (StateLoaded[*Bytecode], bool) {
	cold := !h.touched[addr]
	h.touched[addr] = true
	b, ok := h.code[addr]
	return Loaded(b, cold), ok
}

func (h *stubHost) CodeHash(addr common.Address) (StateLoaded[common.Hash], bool) {
	cold := !h.touched[addr]
	h.touched[addr] = true
	hash, ok := h.codeHash[addr]
	return Loaded(hash, cold), ok
}

func (h *stubHost) Environment() *Environment { return &h.env }

func (h *stubHost) LoadAccount(addr common.Address) (AccountResult, bool) {
	cold := !h.touched[addr]
	h.touched[addr] = true
	return AccountResult{IsCold: cold}, true
}

func (h *stubHost) Log(event LogEvent) error {
	h.logs = append(h.logs, event)
	return nil
}

func (h *stubHost) SelfDestruct(addr, target common.Address) (StateLoaded[SelfDestructResult], error) {
	return Loaded(SelfDestructResult{}, false), nil
}

func (h *stubHost) slotKey(addr common.Address, key common.Hash) [2][32]byte {
	var k [2][32]byte
	k[0] = addr.Hash()
	k[1] = key
	return k
}

func (h *stubHost) SLoad(addr common.Address, key common.Hash) (StateLoaded[uint256.Int], error) {
	sk := h.slotKey(addr, key)
	cold := !h.slotTouched[sk]
	h.slotTouched[sk] = true
	if m, ok := h.storage[addr]; ok {
		return Loaded(m[key], cold), nil
	}
	return Loaded(uint256.Int{}, cold), nil
}

func (h *stubHost) SStore(addr common.Address, key common.Hash, value uint256.Int) (StateLoaded[SStoreResult], error) {
	sk := h.slotKey(addr, key)
	cold := !h.slotTouched[sk]
	h.slotTouched[sk] = true
	m, ok := h.storage[addr]
	if !ok {
		m = map[common.Hash]uint256.Int{}
		h.storage[addr] = m
	}
	prev := m[key]
	m[key] = value
	return StateLoaded[SStoreResult]{
		Data:   SStoreResult{OriginalValue: prev, PresentValue: prev, NewValue: value, IsCold: cold},
		IsCold: cold,
	}, nil
}

func (h *stubHost) TLoad(addr common.Address, key common.Hash) uint256.Int {
	if m, ok := h.transient[addr]; ok {
		return m[key]
	}
	return uint256.Int{}
}

func (h *stubHost) TStore(addr common.Address, key common.Hash, value uint256.Int) {
	m, ok := h.transient[addr]
	if !ok {
		m = map[common.Hash]uint256.Int{}
		h.transient[addr] = m
	}
	m[key] = value
}
