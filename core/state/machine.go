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
	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/core/vm"
	"github.com/ethereum/go-evmcore/crypto"
)

// maxCallDepth mirrors the historical EVM call-depth cap: the outermost frame
// runs at depth 0, and a frame at depth 1024 cannot open another.
const maxCallDepth = 1024

// Machine owns the call-depth loop the interpreter itself never performs: it
// takes the call/create actions an Interpreter suspends with, spins up a
// child Interpreter against the same Host, and folds the child's outcome
// back into the parent frame's stack, memory and gas.
type Machine struct {
	Host *JournaledHost
}

// NewMachine builds a Machine driving frames against host.
func NewMachine(host *JournaledHost) *Machine {
	return &Machine{Host: host}
}

// Outcome is the result of running a top-level call or contract creation to
// completion: every nested CALL/CREATE has already been resolved.
type Outcome struct {
	Status  vm.InterpreterStatus
	Output  []byte
	GasUsed uint64
	Refund  int64
}

// Run executes contract as a top-level message call and drives every nested
// CALL/CREATE it issues to completion. It first applies the transaction's
// EIP-2930 access list (sender, target and every listed entry) so those
// addresses/slots price as warm from the very first opcode.
func (m *Machine) Run(contract *vm.Contract, gasLimit uint64, isStatic bool) Outcome {
	tx := &m.Host.Env.Tx
	target, hasTarget := tx.TransactTo.Address()
	m.Host.State.PreloadAccessList(tx.Caller, target, hasTarget, tx.AccessList)

	it := vm.NewInterpreter(contract, m.Host, vm.InterpreterInitOptions{
		GasLimit: gasLimit,
		IsStatic: isStatic,
		SpecID:   m.Host.Spec,
	})
	defer it.Release()
	return m.drive(it)
}

// runCall services a suspended CALL-family action: it performs the value
// transfer (if any), loads the callee's code, drives a child interpreter (or
// short-circuits for an account with no code), and resumes the parent.
func (m *Machine) runCall(parent *vm.Interpreter, call vm.CallAction) vm.InterpreterAction {
	if m.Host.State.Depth() >= maxCallDepth {
		return parent.ResumeCall(call.ReturnMemoryOffset, false, call.GasLimit, nil)
	}

	cp := m.Host.State.Checkpoint()

	if call.Value.IsTransfer() && !call.Value.Amount().IsZero() {
		if err := m.Host.State.Transfer(call.Caller, call.TargetAddress, call.Value.Amount()); err != nil {
			m.Host.State.RevertCheckpoint(cp)
			return parent.ResumeCall(call.ReturnMemoryOffset, false, call.GasLimit, nil)
		}
	}

	acc, _ := m.Host.State.LoadCode(call.BytecodeAddress)
	if acc.Info.Code == nil || acc.Info.Code.OriginalLength() == 0 {
		m.Host.State.CommitCheckpoint()
		return parent.ResumeCall(call.ReturnMemoryOffset, true, call.GasLimit, nil)
	}

	contract := vm.NewContract(call.Caller, call.TargetAddress, call.Value.Amount(), acc.Info.Code, acc.Info.CodeHash, call.Inputs)
	child := vm.NewInterpreter(contract, m.Host, vm.InterpreterInitOptions{
		GasLimit: call.GasLimit,
		IsStatic: call.IsStatic,
		SpecID:   m.Host.Spec,
	})
	defer child.Release()

	out := m.drive(child)
	success := out.Status == vm.StatusReturned || out.Status == vm.StatusStopped || out.Status == vm.StatusSelfDestructed

	if success {
		m.Host.State.CommitCheckpoint()
		if !m.Host.Env.Config.DisableGasRefund {
			parent.Gas.AddRefund(out.Refund)
		}
	} else {
		m.Host.State.RevertCheckpoint(cp)
	}

	gasLeft := call.GasLimit - out.GasUsed
	return parent.ResumeCall(call.ReturnMemoryOffset, success, gasLeft, out.Output)
}

// runCreate services a suspended CREATE/CREATE2 action: derives the new
// address, opens an atomic create checkpoint, drives the init code, and
// installs the returned runtime code on success.
func (m *Machine) runCreate(parent *vm.Interpreter, create vm.CreateAction) vm.InterpreterAction {
	if m.Host.State.Depth() >= maxCallDepth {
		return parent.ResumeCreate(false, create.GasLimit, common.Address{}, nil)
	}

	nonce, ok := m.Host.State.IncrementNonce(create.Caller)
	if !ok {
		return parent.ResumeCreate(false, create.GasLimit, common.Address{}, nil)
	}

	var target common.Address
	if create.Scheme.IsCreate2 {
		target = crypto.CreateAddress2(create.Caller, create.Scheme.Salt, crypto.Keccak256(create.InitCode))
	} else {
		target = crypto.CreateAddress(create.Caller, nonce-1)
	}

	cp, err := m.Host.State.CreateAccountCheckpoint(create.Caller, target, create.Value)
	if err != nil {
		return parent.ResumeCreate(false, create.GasLimit, common.Address{}, nil)
	}

	initCode := vm.NewRawBytecode(create.InitCode).Analyze()
	contract := vm.NewContract(create.Caller, target, create.Value, initCode, common.Hash{}, nil)
	child := vm.NewInterpreter(contract, m.Host, vm.InterpreterInitOptions{
		GasLimit: create.GasLimit,
		IsStatic: false,
		SpecID:   m.Host.Spec,
	})
	defer child.Release()

	out := m.drive(child)

	if out.Status != vm.StatusReturned && out.Status != vm.StatusStopped {
		m.Host.State.RevertCheckpoint(cp)
		gasLeft := create.GasLimit - out.GasUsed
		output := out.Output
		if out.Status != vm.StatusReverted {
			gasLeft = 0
			output = nil
		}
		return parent.ResumeCreate(false, gasLeft, common.Address{}, output)
	}

	depositCost := GasCodeDeposit(uint64(len(out.Output)))
	if out.GasUsed+depositCost > create.GasLimit || len(out.Output) > defaultContractSizeLimitConst {
		m.Host.State.RevertCheckpoint(cp)
		return parent.ResumeCreate(false, 0, common.Address{}, nil)
	}
	if len(out.Output) > 0 && out.Output[0] == 0xEF {
		m.Host.State.RevertCheckpoint(cp)
		return parent.ResumeCreate(false, 0, common.Address{}, nil)
	}

	codeHash := crypto.Keccak256Hash(out.Output)
	m.Host.State.SetCode(target, codeHash, vm.NewRawBytecode(out.Output))
	m.Host.State.CommitCheckpoint()
	if !m.Host.Env.Config.DisableGasRefund {
		parent.Gas.AddRefund(out.Refund)
	}

	gasLeft := create.GasLimit - out.GasUsed - depositCost
	return parent.ResumeCreate(true, gasLeft, target, nil)
}

// drive runs a freshly created child interpreter to a fully-resolved
// terminal outcome, recursing through any CALL/CREATE it issues itself.
func (m *Machine) drive(it *vm.Interpreter) Outcome {
	action := it.Run()
	for {
		if ret, ok := action.Return(); ok {
			return Outcome{Status: ret.Result, Output: ret.Output, GasUsed: ret.Gas.Used(), Refund: ret.Gas.Refund()}
		}
		if call, ok := action.Call(); ok {
			action = m.runCall(it, call)
			continue
		}
		create, _ := action.Create()
		action = m.runCreate(it, create)
	}
}

// defaultContractSizeLimitConst mirrors EIP-170's 24KB cap for the init-code
// deployed-size check; kept separate from the interpreter's own
// LimitContractSize pointer since the post-deploy check always applies.
const defaultContractSizeLimitConst = 24576

// GasCodeDeposit is the PER_DEPLOYED_CODE_BYTE deployment cost CREATE pays
// once the init code returns.
func GasCodeDeposit(size uint64) uint64 {
	return size * vm.GasCodeDeposit
}
