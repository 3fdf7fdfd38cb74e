// Copyright 2014 The go-ethereum Authors
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
	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/params"
)

// InterpreterInitOptions configures a fresh Interpreter run.
type InterpreterInitOptions struct {
	GasLimit uint64
	IsStatic bool
	SpecID   params.SpecId
}

// DefaultInterpreterInitOptions mirrors a production top-level call: the
// full block gas limit, a non-static frame, running the newest rules.
func DefaultInterpreterInitOptions() InterpreterInitOptions {
	return InterpreterInitOptions{GasLimit: 30_000_000, SpecID: params.LATEST}
}

// Interpreter drives one call frame's bytecode to a terminal outcome. It
// never recurses into a child frame itself; CALL/CREATE opcodes suspend
// execution by filling NextAction and setting Status to StatusCallOrCreate,
// handing control back to whatever owns the call-depth loop.
type Interpreter struct {
	Contract *Contract
	Stack    *Stack
	Memory   *Memory
	Host     Host

	ProgramCounter   uint64
	Gas              *GasTracker
	ReturnDataBuffer []byte
	SpecID           params.SpecId
	Status           InterpreterStatus
	IsStatic         bool
	NextAction       InterpreterAction

	err error
}

// NewInterpreter allocates an Interpreter and immediately Inits it.
func NewInterpreter(contract *Contract, host Host, opts InterpreterInitOptions) *Interpreter {
	it := &Interpreter{}
	it.Init(contract, host, opts)
	return it
}

// Init validates/analyzes the contract's bytecode and resets every piece of
// per-frame state to its starting value.
func (it *Interpreter) Init(contract *Contract, host Host, opts InterpreterInitOptions) {
	if !contract.Code.IsAnalyzed() {
		*contract.Code = *contract.Code.Analyze()
	}
	it.Contract = contract
	it.Host = host
	it.Stack = newstack()
	it.Memory = NewMemory()
	it.ProgramCounter = 0
	it.Gas = NewGasTracker(opts.GasLimit)
	it.ReturnDataBuffer = nil
	it.SpecID = opts.SpecID
	it.Status = StatusRunning
	it.IsStatic = opts.IsStatic
	it.NextAction = NoAction()
	it.err = nil
}

// Release returns the frame's pooled Stack. Callers must not touch the
// Interpreter's Stack field after calling this.
func (it *Interpreter) Release() {
	if it.Stack != nil {
		returnStack(it.Stack)
		it.Stack = nil
	}
}

// Err returns the error that produced the current terminal status, if any.
func (it *Interpreter) Err() error { return it.err }

// Run executes instructions until Status leaves StatusRunning, then returns
// the action the frame left behind: a return to the caller, or a
// call/create the outer driver must service.
func (it *Interpreter) Run() InterpreterAction {
	for it.Status == StatusRunning {
		it.runInstruction()
		if it.Status == StatusRunning {
			it.advanceProgramCounter()
		}
	}
	if it.Status.IsTerminal() && !it.NextAction.IsCall() && !it.NextAction.IsCreate() {
		it.NextAction = ReturnActionOf(ReturnAction{
			Result: it.Status,
			Output: it.outputForStatus(),
			Gas:    *it.Gas,
		})
	}
	return it.NextAction
}

// ResumeCall feeds a completed CALL-family sub-execution's outcome back into
// this frame: refunds unspent forwarded gas, writes the returned output into
// the caller's reserved memory window, sets RETURNDATA, and pushes the
// success flag the caller's opcode promised the stack. It then resumes the
// run loop from where the frame suspended.
func (it *Interpreter) ResumeCall(offset MemoryOffset, success bool, gasLeft uint64, output []byte) InterpreterAction {
	it.Gas.Return(gasLeft)
	it.ReturnDataBuffer = output
	if success && offset.Length > 0 {
		n := offset.Length
		if uint64(len(output)) < n {
			n = uint64(len(output))
		}
		it.Memory.WriteData(offset.Offset, 0, n, output[:n])
	}
	flag := uint64(0)
	if success {
		flag = 1
	}
	it.Stack.push(WordFromUint64(flag))
	return it.resume()
}

// ResumeCreate feeds a completed CREATE/CREATE2 sub-execution's outcome back
// into this frame: refunds unspent forwarded gas, sets RETURNDATA (only
// populated on failure, matching CREATE's semantics), and pushes either the
// new contract's address or zero.
func (it *Interpreter) ResumeCreate(success bool, gasLeft uint64, address common.Address, output []byte) InterpreterAction {
	it.Gas.Return(gasLeft)
	if success {
		it.ReturnDataBuffer = nil
		it.Stack.push(AddressToWord(address))
	} else {
		it.ReturnDataBuffer = output
		it.Stack.push(NewWord())
	}
	return it.resume()
}

// resume puts a suspended frame back into the run loop after a call/create
// result has been applied.
func (it *Interpreter) resume() InterpreterAction {
	it.NextAction = NoAction()
	it.Status = StatusRunning
	it.advanceProgramCounter()
	return it.Run()
}

func (it *Interpreter) outputForStatus() []byte {
	switch it.Status {
	case StatusReturned, StatusReverted:
		return it.ReturnDataBuffer
	default:
		return nil
	}
}

// runInstruction dispatches the opcode at the current PC through the jump
// table. PUSH/JUMP handlers are responsible for their own PC adjustments;
// every other handler leaves PC for advanceProgramCounter to move forward.
func (it *Interpreter) runInstruction() {
	op := it.Contract.GetOp(it.ProgramCounter)
	instr := defaultJumpTable[op]
	if instr == nil {
		it.fail(StatusOpcodeNotFound, ErrOpcodeNotFound)
		return
	}
	instr(it, op)
}

// advanceProgramCounter moves PC forward by one, the default step size for
// every opcode that does not itself redirect control flow.
func (it *Interpreter) advanceProgramCounter() {
	it.ProgramCounter++
}

// fail terminates the frame with the given status/error pair.
func (it *Interpreter) fail(status InterpreterStatus, err error) {
	it.Status = status
	it.err = err
}

// chargeGas deducts cost, failing the frame with OutOfGas on insufficient
// balance. Returns false when the frame was failed so callers can bail out
// of their handler immediately.
func (it *Interpreter) chargeGas(cost uint64) bool {
	if err := it.Gas.Charge(cost); err != nil {
		it.fail(StatusInvalid, err)
		return false
	}
	return true
}

// resize grows Memory to cover `size` bytes (rounded up to a whole word),
// charging the expansion cost first. Returns false (and fails the frame) on
// either an OutOfGas or a MaxMemoryReached.
func (it *Interpreter) resize(size uint64) bool {
	words := toWordSize(size)
	newLen := words * 32
	if newLen <= uint64(it.Memory.Len()) {
		return true
	}
	cost := memoryExpansionCost(uint64(it.Memory.Len()), newLen)
	if !it.chargeGas(cost) {
		return false
	}
	limit := it.Host.Environment().Config.MemoryLimit
	if err := it.Memory.Resize(newLen, limit); err != nil {
		it.fail(StatusInvalid, err)
		return false
	}
	return true
}

// memoryExpansionCost implements 3*(w'-w) + (w'^2/512 - w^2/512) in terms
// of whole words, given old/new lengths in bytes.
func memoryExpansionCost(oldLen, newLen uint64) uint64 {
	oldWords := toWordSize(oldLen)
	newWords := toWordSize(newLen)
	if newWords <= oldWords {
		return 0
	}
	newCost := 3*newWords + newWords*newWords/512
	oldCost := 3*oldWords + oldWords*oldWords/512
	return newCost - oldCost
}

// requireStack fails the frame with StackUnderflow/StackOverflow if the
// stack cannot sustain `pops` pops followed by `pushes` net-new pushes.
func (it *Interpreter) requireStack(pops, pushes int) bool {
	if it.Stack.len() < pops {
		it.fail(StatusInvalid, ErrStackUnderflow)
		return false
	}
	if it.Stack.len()-pops+pushes > stackLimit {
		it.fail(StatusInvalid, ErrStackOverflow)
		return false
	}
	return true
}

// requireNotStatic fails the frame with the static-call violation status if
// this frame is static, for every state-mutating opcode.
func (it *Interpreter) requireNotStatic() bool {
	if it.IsStatic {
		it.fail(StatusCallWithValueNotAllowedInStaticCall, ErrWriteProtection)
		return false
	}
	return true
}
