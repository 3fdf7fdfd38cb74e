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

// CallScheme distinguishes the four CALL-family opcodes; each implies
// different caller/callee/value/static semantics for the outer driver.
type CallScheme uint8

const (
	SchemeCall CallScheme = iota
	SchemeCallCode
	SchemeDelegateCall
	SchemeStaticCall
)

// CreateScheme distinguishes CREATE from CREATE2; only the latter carries a salt.
type CreateScheme struct {
	IsCreate2 bool
	Salt      uint256.Int
}

// CallValue discriminates a CALL that actually moves value from one that
// merely reports a value (DELEGATECALL forwards the parent's own value
// without transferring anything new; CALLCODE transfers its value from the
// calling contract to itself).
type CallValue struct {
	isTransfer bool
	amount     uint256.Int
}

// Transfer builds a CallValue that moves amount from caller to callee.
func Transfer(amount uint256.Int) CallValue { return CallValue{isTransfer: true, amount: amount} }

// Limbo builds a CallValue that is visible to CALLVALUE but transfers nothing.
func Limbo(amount uint256.Int) CallValue { return CallValue{amount: amount} }

func (c CallValue) IsTransfer() bool    { return c.isTransfer }
func (c CallValue) Amount() uint256.Int { return c.amount }

// MemoryOffset is a (offset, length) pair describing where a CALL-family
// opcode wants its return data written back into the parent's memory.
type MemoryOffset struct {
	Offset uint64
	Length uint64
}

// CallAction is what the interpreter hands back to the outer driver when a
// CALL-family opcode fires. The driver is responsible for spinning up a
// child interpreter, running it to completion, and applying its outcome
// back onto this frame.
type CallAction struct {
	Inputs             []byte
	ReturnMemoryOffset MemoryOffset
	GasLimit           uint64
	BytecodeAddress    common.Address
	TargetAddress      common.Address
	Caller             common.Address
	Value              CallValue
	Scheme             CallScheme
	IsStatic           bool
}

// CreateAction is what the interpreter hands back to the outer driver when
// CREATE or CREATE2 fires.
type CreateAction struct {
	Caller   common.Address
	Scheme   CreateScheme
	Value    uint256.Int
	InitCode []byte
	GasLimit uint64
}

// ReturnAction carries a frame's terminal outcome back to whichever driver
// invoked it - either the outer caller frame (sub-call) or the top-level
// entry point (outermost frame).
type ReturnAction struct {
	Result InterpreterStatus
	Output []byte
	Gas    GasTracker
}

// actionKind discriminates the InterpreterAction union.
type actionKind uint8

const (
	actionNone actionKind = iota
	actionCall
	actionCreate
	actionReturn
)

// InterpreterAction is the tagged union the interpreter driver fills in
// before suspending: "none" while still running, "call"/"create" when it
// needs the outer driver to perform a sub-execution, "return" once the
// frame has a terminal outcome to report upward.
type InterpreterAction struct {
	kind   actionKind
	call   *CallAction
	create *CreateAction
	ret    *ReturnAction
}

func NoAction() InterpreterAction { return InterpreterAction{kind: actionNone} }

func CallActionOf(c CallAction) InterpreterAction {
	return InterpreterAction{kind: actionCall, call: &c}
}

func CreateActionOf(c CreateAction) InterpreterAction {
	return InterpreterAction{kind: actionCreate, create: &c}
}

func ReturnActionOf(r ReturnAction) InterpreterAction {
	return InterpreterAction{kind: actionReturn, ret: &r}
}

func (a InterpreterAction) IsNone() bool   { return a.kind == actionNone }
func (a InterpreterAction) IsCall() bool   { return a.kind == actionCall }
func (a InterpreterAction) IsCreate() bool { return a.kind == actionCreate }
func (a InterpreterAction) IsReturn() bool { return a.kind == actionReturn }

// Call returns the wrapped CallAction and true, or false if this is not a call action.
func (a InterpreterAction) Call() (CallAction, bool) {
	if a.call == nil {
		return CallAction{}, false
	}
	return *a.call, true
}

// Create returns the wrapped CreateAction and true, or false if this is not a create action.
func (a InterpreterAction) Create() (CreateAction, bool) {
	if a.create == nil {
		return CreateAction{}, false
	}
	return *a.create, true
}

// Return returns the wrapped ReturnAction and true, or false if this is not a return action.
func (a InterpreterAction) Return() (ReturnAction, bool) {
	if a.ret == nil {
		return ReturnAction{}, false
	}
	return *a.ret, true
}
