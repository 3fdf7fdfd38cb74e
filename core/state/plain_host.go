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
	"github.com/ethereum/go-evmcore/crypto"
)

// PlainHost is a bare in-memory implementation of vm.Host with no
// journaling or checkpointing at all - every write takes effect
// immediately and permanently. It exists so a single opcode's behavior can
// be unit tested without standing up a full JournaledState.
type PlainHost struct {
	Balances  map[common.Address]uint256.Int
	Codes     map[common.Address]*vm.Bytecode
	Storage   map[common.Address]map[common.Hash]uint256.Int
	Transient map[common.Address]map[common.Hash]uint256.Int
	Blocks    map[uint64]common.Hash
	Logs      []vm.LogEvent
	Env       *vm.Environment

	warm map[common.Address]bool
}

// NewPlainHost returns an empty PlainHost ready to receive fixture data.
func NewPlainHost(env *vm.Environment) *PlainHost {
	return &PlainHost{
		Balances:  make(map[common.Address]uint256.Int),
		Codes:     make(map[common.Address]*vm.Bytecode),
		Storage:   make(map[common.Address]map[common.Hash]uint256.Int),
		Transient: make(map[common.Address]map[common.Hash]uint256.Int),
		Blocks:    make(map[uint64]common.Hash),
		Env:       env,
		warm:      make(map[common.Address]bool),
	}
}

func (p *PlainHost) touch(addr common.Address) bool {
	cold := !p.warm[addr]
	p.warm[addr] = true
	return cold
}

func (p *PlainHost) Balance(addr common.Address) (vm.StateLoaded[uint256.Int], bool) {
	cold := p.touch(addr)
	bal, ok := p.Balances[addr]
	return vm.Loaded(bal, cold), ok
}

func (p *PlainHost) BlockHash(number uint64) (common.Hash, bool) {
	h, ok := p.Blocks[number]
	return h, ok
}

func (p *PlainHost) Code(addr common.Address) (vm.StateLoaded[*vm.Bytecode], bool) {
	cold := p.touch(addr)
	code, ok := p.Codes[addr]
	return vm.Loaded(code, cold), ok
}

func (p *PlainHost) CodeHash(addr common.Address) (vm.StateLoaded[common.Hash], bool) {
	cold := p.touch(addr)
	code, ok := p.Codes[addr]
	if !ok {
		return vm.Loaded(EmptyCodeHash, cold), false
	}
	return vm.Loaded(crypto.Keccak256Hash(code.Code()), cold), true
}

func (p *PlainHost) Environment() *vm.Environment { return p.Env }

func (p *PlainHost) LoadAccount(addr common.Address) (vm.AccountResult, bool) {
	cold := p.touch(addr)
	_, exists := p.Balances[addr]
	return vm.AccountResult{IsCold: cold, IsNew: !exists}, true
}

func (p *PlainHost) Log(event vm.LogEvent) error {
	p.Logs = append(p.Logs, event)
	return nil
}

func (p *PlainHost) SelfDestruct(addr, target common.Address) (vm.StateLoaded[vm.SelfDestructResult], error) {
	cold := p.touch(target)
	bal := p.Balances[addr]
	p.Balances[target] = *new(uint256.Int).Add(&p.Balances[target], &bal)
	p.Balances[addr] = uint256.Int{}
	return vm.Loaded(vm.SelfDestructResult{HadValue: !bal.IsZero(), IsCold: cold}, cold), nil
}

func (p *PlainHost) SLoad(addr common.Address, key common.Hash) (vm.StateLoaded[uint256.Int], error) {
	cold := p.touch(addr)
	slots := p.Storage[addr]
	return vm.Loaded(slots[key], cold), nil
}

func (p *PlainHost) SStore(addr common.Address, key common.Hash, value uint256.Int) (vm.StateLoaded[vm.SStoreResult], error) {
	cold := p.touch(addr)
	slots, ok := p.Storage[addr]
	if !ok {
		slots = make(map[common.Hash]uint256.Int)
		p.Storage[addr] = slots
	}
	prev := slots[key]
	slots[key] = value
	return vm.Loaded(vm.SStoreResult{OriginalValue: prev, PresentValue: prev, NewValue: value, IsCold: cold}, cold), nil
}

func (p *PlainHost) TLoad(addr common.Address, key common.Hash) uint256.Int {
	return p.Transient[addr][key]
}

func (p *PlainHost) TStore(addr common.Address, key common.Hash, value uint256.Int) {
	slots, ok := p.Transient[addr]
	if !ok {
		slots = make(map[common.Hash]uint256.Int)
		p.Transient[addr] = slots
	}
	slots[key] = value
}

var _ vm.Host = (*PlainHost)(nil)
