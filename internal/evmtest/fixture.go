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

// Package evmtest collects the fixture-building helpers core/vm and
// core/state's tests (and the evmrun command) share, so no two packages
// reinvent "construct a default Environment against a MemoryDatabase".
package evmtest

import (
	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/core/state"
	"github.com/ethereum/go-evmcore/core/vm"
	"github.com/ethereum/go-evmcore/crypto"
	"github.com/ethereum/go-evmcore/params"
)

// DefaultEnvironment returns a ConfigEnvironment/BlockEnvironment/TxEnvironment
// triple shaped like a plain top-level call: the production config, an
// all-zero block, and caller/target/value/data supplied by the test.
func DefaultEnvironment(caller, target common.Address, value uint256.Int, data []byte) *vm.Environment {
	return &vm.Environment{
		Config: vm.DefaultConfigEnvironment(),
		Block: vm.BlockEnvironment{
			GasLimit: *uint256.NewInt(30_000_000),
		},
		Tx: vm.TxEnvironment{
			Caller:     caller,
			GasLimit:   30_000_000,
			TransactTo: vm.CallTo(target),
			Value:      value,
			Data:       data,
		},
	}
}

// Chain bundles the pieces a test or the CLI harness needs to run one
// top-level call: the backing database, the journaled state built over it,
// the host, and the call-depth driver.
type Chain struct {
	DB      *state.MemoryDatabase
	State   *state.JournaledState
	Host    *state.JournaledHost
	Machine *state.Machine
}

// NewChain wires a fresh MemoryDatabase-backed JournaledState, Host and
// Machine for the given environment and spec.
func NewChain(env *vm.Environment, spec params.SpecId) *Chain {
	db := state.NewMemoryDatabase()
	st := state.New(db, state.SpecId(spec))
	host := state.NewJournaledHost(st, env, spec)
	return &Chain{
		DB:      db,
		State:   st,
		Host:    host,
		Machine: state.NewMachine(host),
	}
}

// DeployCode installs addr's runtime code directly, bypassing CREATE, for
// tests that only need a callee with known bytecode already in place.
func (c *Chain) DeployCode(addr common.Address, code []byte) {
	bytecode := vm.NewRawBytecode(code).Analyze()
	hash := crypto.Keccak256Hash(code)
	c.DB.SetAccount(addr, state.AccountInfo{CodeHash: hash})
	c.DB.SetCode(hash, bytecode)
}

// RunTopLevel executes code as addr's fresh top-level call, with the given
// calldata and gas limit.
func (c *Chain) RunTopLevel(caller, addr common.Address, code, input []byte, gasLimit uint64) state.Outcome {
	bytecode := vm.NewRawBytecode(code).Analyze()
	contract := vm.NewContract(caller, addr, uint256.Int{}, bytecode, common.Hash{}, input)
	return c.Machine.Run(contract, gasLimit, false)
}
