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

import "github.com/pkg/errors"

// Instruction-level errors: anything an opcode's execute function can
// return directly. The driver turns every one of these into a terminal
// InterpreterStatus for the frame.
var (
	ErrStackUnderflow        = errors.New("stack underflow")
	ErrStackOverflow         = errors.New("stack overflow")
	ErrOutOfGas              = errors.New("out of gas")
	ErrGasUintOverflow       = errors.New("gas uint64 overflow")
	ErrMaxMemoryReached      = errors.New("resizing memory would exceed the memory limit")
	ErrOverflow              = errors.New("arithmetic overflow")
	ErrInvalidJump           = errors.New("invalid jump destination")
	ErrInstructionNotEnabled = errors.New("instruction not enabled in active spec")
	ErrWriteProtection       = errors.New("write protection in static call")
)

// Interpreter-run-level errors: failures the driver itself detects around
// instruction dispatch, one level up from a single opcode's own error.
var (
	ErrOpcodeNotFound                      = errors.New("opcode not found")
	ErrInvalidInstructionOpcode            = errors.New("invalid instruction opcode")
	ErrInterpreterReverted                 = errors.New("execution reverted")
	ErrInvalidOffset                       = errors.New("invalid memory or code offset")
	ErrCallWithValueNotAllowedInStaticCall = errors.New("call with value not allowed in static call")
	ErrCreateCodeSizeLimit                 = errors.New("contract creation code size exceeds limit")
	ErrCreateContractStartingWithEF        = errors.New("contract creation code starts with 0xEF")
	ErrNonceUintOverflow                   = errors.New("nonce uint64 overflow")
)

// JournaledState errors: failures surfaced while applying or reverting
// journal entries against account/storage state.
var (
	ErrNonExistentAccount = errors.New("account does not exist")
	ErrInvalidStorageKey  = errors.New("invalid storage key")
	ErrOutOfFunds         = errors.New("insufficient balance for transfer")
	ErrOverflowPayment    = errors.New("balance overflow on payment")
	ErrCreateCollision    = errors.New("contract creation collides with existing account")
	ErrBalanceOverflow    = errors.New("balance overflow")
	ErrDepthLimit         = errors.New("max call depth exceeded")
)

// UnexpectedError wraps a failure that escaped the host or its backing
// database without a more specific tag of its own, so it can still be
// carried through the typed {status, output, gas} outcome instead of
// propagating as a raw panic or untyped error.
type UnexpectedError struct {
	Cause error
}

func (e *UnexpectedError) Error() string { return "unexpected host error: " + e.Cause.Error() }
func (e *UnexpectedError) Unwrap() error { return e.Cause }
