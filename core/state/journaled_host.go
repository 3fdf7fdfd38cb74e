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
	"github.com/ethereum/go-evmcore/params"
)

// JournaledHost composes a JournaledState with an Environment to satisfy
// vm.Host, the production wiring every real call frame runs against.
type JournaledHost struct {
	State *JournaledState
	Env   *vm.Environment
	Spec  params.SpecId
}

// NewJournaledHost builds a JournaledHost over an already-constructed state
// and environment.
func NewJournaledHost(st *JournaledState, env *vm.Environment, spec params.SpecId) *JournaledHost {
	return &JournaledHost{State: st, Env: env, Spec: spec}
}

func (h *JournaledHost) Balance(addr common.Address) (vm.StateLoaded[uint256.Int], bool) {
	acc, cold := h.State.LoadAccount(addr)
	return vm.Loaded(acc.Info.Balance, cold), !acc.IsNonExistent()
}

func (h *JournaledHost) BlockHash(number uint64) (common.Hash, bool) {
	return h.State.database.BlockHash(number)
}

func (h *JournaledHost) Code(addr common.Address) (vm.StateLoaded[*vm.Bytecode], bool) {
	acc, cold := h.State.LoadCode(addr)
	return vm.Loaded(acc.Info.Code, cold), !acc.IsNonExistent()
}

func (h *JournaledHost) CodeHash(addr common.Address) (vm.StateLoaded[common.Hash], bool) {
	acc, cold := h.State.LoadAccount(addr)
	return vm.Loaded(acc.Info.CodeHash, cold), !acc.IsNonExistent()
}

func (h *JournaledHost) Environment() *vm.Environment { return h.Env }

func (h *JournaledHost) LoadAccount(addr common.Address) (vm.AccountResult, bool) {
	acc, cold := h.State.LoadAccount(addr)
	return vm.AccountResult{IsCold: cold, IsNew: acc.IsNonExistent()}, true
}

func (h *JournaledHost) Log(event vm.LogEvent) error {
	h.State.Log(event)
	return nil
}

func (h *JournaledHost) SelfDestruct(addr, target common.Address) (vm.StateLoaded[vm.SelfDestructResult], error) {
	cancun := params.Enabled(h.Spec, params.CANCUN)
	res, err := h.State.SelfDestruct(addr, target, cancun)
	if err != nil {
		return vm.StateLoaded[vm.SelfDestructResult]{}, err
	}
	return vm.Loaded(res, res.IsCold), nil
}

func (h *JournaledHost) SLoad(addr common.Address, key common.Hash) (vm.StateLoaded[uint256.Int], error) {
	value, cold := h.State.SLoad(addr, key)
	return vm.Loaded(value, cold), nil
}

func (h *JournaledHost) SStore(addr common.Address, key common.Hash, value uint256.Int) (vm.StateLoaded[vm.SStoreResult], error) {
	res, cold, err := h.State.SStore(addr, key, value)
	if err != nil {
		return vm.StateLoaded[vm.SStoreResult]{}, err
	}
	return vm.Loaded(res, cold), nil
}

func (h *JournaledHost) TLoad(addr common.Address, key common.Hash) uint256.Int {
	return h.State.TLoad(addr, key)
}

func (h *JournaledHost) TStore(addr common.Address, key common.Hash, value uint256.Int) {
	h.State.TStore(addr, key, value)
}

var _ vm.Host = (*JournaledHost)(nil)
