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
	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/params"
)

func opStop(it *Interpreter, _ OpCode) {
	it.Status = StatusStopped
}

func opPop(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 0) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.pop()
}

func opMload(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) {
		return
	}
	offset := it.Stack.peek()
	if !it.resize(offset.Uint64() + 32) {
		return
	}
	if !it.chargeGas(GasFastestStep) {
		return
	}
	it.Memory.GetWord(offset.Uint64(), offset)
}

func opMstore(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 0) {
		return
	}
	offset, value := it.Stack.pop(), it.Stack.pop()
	if !it.resize(offset.Uint64() + 32) {
		return
	}
	if !it.chargeGas(GasFastestStep) {
		return
	}
	it.Memory.WriteWord(offset.Uint64(), &value)
}

func opMstore8(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 0) {
		return
	}
	offset, value := it.Stack.pop(), it.Stack.pop()
	if !it.resize(offset.Uint64() + 1) {
		return
	}
	if !it.chargeGas(GasFastestStep) {
		return
	}
	it.Memory.WriteByte(offset.Uint64(), byte(value.Uint64()))
}

func opMcopy(it *Interpreter, _ OpCode) {
	if !it.requireStack(3, 0) {
		return
	}
	dst, src, length := it.Stack.pop(), it.Stack.pop(), it.Stack.pop()
	maxEnd := dst.Uint64() + length.Uint64()
	if s := src.Uint64() + length.Uint64(); s > maxEnd {
		maxEnd = s
	}
	if !it.resize(maxEnd) {
		return
	}
	cost := GasFastestStep + GasDataLoad*toWordSize(length.Uint64())
	if !it.chargeGas(cost) {
		return
	}
	it.Memory.Copy(dst.Uint64(), src.Uint64(), length.Uint64())
}

func opMsize(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(WordFromUint64(uint64(it.Memory.Len())))
}

func opSload(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) {
		return
	}
	keyWord := it.Stack.peek()
	key := WordToHash(keyWord)
	loaded, err := it.Host.SLoad(it.Contract.Address, key)
	if err != nil {
		it.fail(StatusInvalid, err)
		return
	}
	cost := sloadCost(it.SpecID, loaded.IsCold)
	if !it.chargeGas(cost) {
		return
	}
	keyWord.Set(&loaded.Data)
}

func sloadCost(spec params.SpecId, cold bool) uint64 {
	switch {
	case params.Enabled(spec, params.BERLIN):
		if cold {
			return GasColdSload
		}
		return GasWarmStorageRead
	case params.Enabled(spec, params.ISTANBUL):
		return GasIstanbulSload
	default:
		return 200
	}
}

func opSstore(it *Interpreter, _ OpCode) {
	if !it.requireNotStatic() || !it.requireStack(2, 0) {
		return
	}
	keyWord, value := it.Stack.pop(), it.Stack.pop()
	key := WordToHash(&keyWord)

	if params.Enabled(it.SpecID, params.ISTANBUL) && it.Gas.Available() <= GasCallStipend {
		it.fail(StatusInvalid, ErrOutOfGas)
		return
	}

	loaded, err := it.Host.SStore(it.Contract.Address, key, value)
	if err != nil {
		it.fail(StatusInvalid, err)
		return
	}
	cost, refund := sstoreCostAndRefund(it.SpecID, loaded.Data, loaded.IsCold)
	if !it.chargeGas(cost) {
		return
	}
	if !it.Host.Environment().Config.DisableGasRefund {
		it.Gas.AddRefund(refund)
	}
}

// sstoreCostAndRefund implements the net-gas EIP-2200/EIP-2929/EIP-3529
// accounting table.
func sstoreCostAndRefund(spec params.SpecId, r StateLoadedSStore, cold bool) (uint64, int64) {
	o, c, n := r.OriginalValue, r.PresentValue, r.NewValue
	coldSurcharge := uint64(0)
	if cold && params.Enabled(spec, params.BERLIN) {
		coldSurcharge = GasColdSload
	}
	var refund int64
	var cost uint64
	switch {
	case c == n:
		cost = GasWarmStorageRead
	case c == o:
		if o.IsZero() {
			cost = GasSstoreSet
		} else {
			cost = GasSstoreReset
			if n.IsZero() {
				refund += int64(GasRefundSstoreClears)
			}
		}
	default:
		cost = GasWarmStorageRead
		if !o.IsZero() {
			if c.IsZero() {
				refund -= int64(GasRefundSstoreClears)
			}
			if n.IsZero() {
				refund += int64(GasRefundSstoreClears)
			}
		}
		if o == n {
			if o.IsZero() {
				refund += int64(GasSstoreSet - GasWarmStorageRead)
			} else {
				refund += int64(GasSstoreReset+coldSurcharge) - int64(GasWarmStorageRead)
			}
		}
	}
	if cold && params.Enabled(spec, params.BERLIN) && c == o {
		cost += coldSurcharge
	}
	return cost, refund
}

// StateLoadedSStore aliases the host's SStoreResult so this file doesn't
// need to import the host package's full surface just for field access.
type StateLoadedSStore = SStoreResult

func opJump(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 0) || !it.chargeGas(GasMidStep) {
		return
	}
	dest := it.Stack.pop()
	if !it.Contract.IsValidJump(dest.Uint64()) {
		it.fail(StatusInvalidJump, ErrInvalidJump)
		return
	}
	// Run's loop unconditionally advances PC by one after a non-terminal
	// instruction, so land one short of dest here.
	it.ProgramCounter = dest.Uint64() - 1
}

func opJumpi(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 0) || !it.chargeGas(GasSlowStep) {
		return
	}
	dest, cond := it.Stack.pop(), it.Stack.pop()
	if cond.IsZero() {
		// Not taken: leave PC where it is and let Run's loop perform the
		// single post-instruction advance onto the next opcode.
		return
	}
	if !it.Contract.IsValidJump(dest.Uint64()) {
		it.fail(StatusInvalidJump, ErrInvalidJump)
		return
	}
	it.ProgramCounter = dest.Uint64() - 1
}

func opPc(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(WordFromUint64(it.ProgramCounter))
}

func opGas(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(WordFromUint64(it.Gas.Available()))
}

func opJumpdest(it *Interpreter, _ OpCode) {
	it.chargeGas(GasJumpDest)
}

func opTload(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) || !it.chargeGas(GasWarmStorageRead) {
		return
	}
	keyWord := it.Stack.peek()
	key := WordToHash(keyWord)
	value := it.Host.TLoad(it.Contract.Address, key)
	keyWord.Set(&value)
}

func opTstore(it *Interpreter, _ OpCode) {
	if !it.requireNotStatic() || !it.requireStack(2, 0) || !it.chargeGas(GasWarmStorageRead) {
		return
	}
	keyWord, value := it.Stack.pop(), it.Stack.pop()
	key := WordToHash(&keyWord)
	it.Host.TStore(it.Contract.Address, key, value)
}

func opPush0(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(NewWord())
}

func opPush(it *Interpreter, op OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	n := op.PushBytes()
	code := it.Contract.Code.Code()
	start := it.ProgramCounter + 1
	data := getDataBytes(code, start, uint64(n))
	it.Stack.push(new(uint256.Int).SetBytes(data))
	it.ProgramCounter += uint64(n)
}

func opDup(it *Interpreter, op OpCode) {
	n := int(op-DUP1) + 1
	if !it.requireStack(n, n+1) || !it.chargeGas(GasFastestStep) {
		return
	}
	it.Stack.dup(n)
}

func opSwap(it *Interpreter, op OpCode) {
	n := int(op-SWAP1) + 1
	if !it.requireStack(n+1, n+1) || !it.chargeGas(GasFastestStep) {
		return
	}
	it.Stack.swap(n + 1)
}

func opInvalid(it *Interpreter, _ OpCode) {
	it.fail(StatusInvalid, ErrInvalidInstructionOpcode)
}
