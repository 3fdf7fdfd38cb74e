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

// InterpreterStatus is the interpreter's state machine: Running and
// CallOrCreate (a frame suspended on a sub-call) are the non-terminal values;
// run() loops until status leaves Running.
type InterpreterStatus uint8

const (
	StatusRunning InterpreterStatus = iota
	StatusStopped
	StatusReturned
	StatusReverted
	StatusSelfDestructed
	StatusInvalid
	StatusInvalidJump
	StatusInvalidOffset
	StatusOpcodeNotFound
	StatusCallOrCreate
	StatusCallWithValueNotAllowedInStaticCall
	StatusCreateCodeSizeLimit
)

func (s InterpreterStatus) IsRunning() bool { return s == StatusRunning }

// IsTerminal reports whether this status ends the frame's execution.
func (s InterpreterStatus) IsTerminal() bool { return s != StatusRunning && s != StatusCallOrCreate }

func (s InterpreterStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	case StatusReturned:
		return "returned"
	case StatusReverted:
		return "reverted"
	case StatusSelfDestructed:
		return "self_destructed"
	case StatusInvalid:
		return "invalid"
	case StatusInvalidJump:
		return "invalid_jump"
	case StatusInvalidOffset:
		return "invalid_offset"
	case StatusOpcodeNotFound:
		return "opcode_not_found"
	case StatusCallOrCreate:
		return "call_or_create"
	case StatusCallWithValueNotAllowedInStaticCall:
		return "call_with_value_not_allowed_in_static_call"
	case StatusCreateCodeSizeLimit:
		return "create_code_size_limit"
	default:
		return "unknown"
	}
}
