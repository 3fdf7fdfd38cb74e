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

func opAddress(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(AddressToWord(it.Contract.Address))
}

// coldWarmCost returns COLD_ACCOUNT_ACCESS_COST/WARM_STORAGE_READ_COST
// after BERLIN, or the pre-BERLIN flat fee otherwise.
func coldWarmCost(spec params.SpecId, cold bool, flatPreBerlin uint64) uint64 {
	if !params.Enabled(spec, params.BERLIN) {
		return flatPreBerlin
	}
	if cold {
		return GasColdAccountAccess
	}
	return GasWarmStorageRead
}

func opBalance(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) {
		return
	}
	addrWord := it.Stack.peek()
	addr := WordToAddress(addrWord)
	loaded, _ := it.Host.Balance(addr)
	cost := coldWarmCost(it.SpecID, loaded.IsCold, GasExtStep)
	if !it.chargeGas(cost) {
		return
	}
	addrWord.Set(&loaded.Data)
}

func opOrigin(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(AddressToWord(it.Host.Environment().Tx.Caller))
}

func opCaller(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(AddressToWord(it.Contract.CallerAddress))
}

func opCallValue(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(&it.Contract.Value)
}

func opCallDataLoad(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x := it.Stack.peek()
	x.SetBytes(getDataBytes(it.Contract.Input, x.Uint64(), 32))
}

func opCallDataSize(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(WordFromUint64(uint64(len(it.Contract.Input))))
}

func opCallDataCopy(it *Interpreter, _ OpCode) {
	if !it.requireStack(3, 0) {
		return
	}
	memOffset, dataOffset, length := it.Stack.pop(), it.Stack.pop(), it.Stack.pop()
	if !it.resize(memOffset.Uint64() + length.Uint64()) {
		return
	}
	cost := GasFastestStep + GasDataLoad*toWordSize(length.Uint64())
	if !it.chargeGas(cost) {
		return
	}
	it.Memory.WriteData(memOffset.Uint64(), dataOffset.Uint64(), length.Uint64(), it.Contract.Input)
}

func opCodeSize(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(WordFromUint64(uint64(it.Contract.Code.OriginalLength())))
}

func opCodeCopy(it *Interpreter, _ OpCode) {
	if !it.requireStack(3, 0) {
		return
	}
	memOffset, codeOffset, length := it.Stack.pop(), it.Stack.pop(), it.Stack.pop()
	if !it.resize(memOffset.Uint64() + length.Uint64()) {
		return
	}
	cost := GasFastestStep + GasDataLoad*toWordSize(length.Uint64())
	if !it.chargeGas(cost) {
		return
	}
	it.Memory.WriteData(memOffset.Uint64(), codeOffset.Uint64(), length.Uint64(), it.Contract.Code.Code()[:it.Contract.Code.OriginalLength()])
}

func opGasPrice(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	gp := it.Host.Environment().Tx.GasPrice
	it.Stack.push(&gp)
}

func opExtCodeSize(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) {
		return
	}
	addrWord := it.Stack.peek()
	addr := WordToAddress(addrWord)
	loaded, exists := it.Host.Code(addr)
	cost := coldWarmCost(it.SpecID, loaded.IsCold, 20)
	if !it.chargeGas(cost) {
		return
	}
	if !exists || loaded.Data == nil {
		addrWord.Clear()
		return
	}
	addrWord.SetUint64(uint64(loaded.Data.OriginalLength()))
}

func opExtCodeCopy(it *Interpreter, _ OpCode) {
	if !it.requireStack(4, 0) {
		return
	}
	addrWord, memOffset, codeOffset, length := it.Stack.pop(), it.Stack.pop(), it.Stack.pop(), it.Stack.pop()
	addr := WordToAddress(&addrWord)
	loaded, _ := it.Host.Code(addr)
	if !it.resize(memOffset.Uint64() + length.Uint64()) {
		return
	}
	cost := coldWarmCost(it.SpecID, loaded.IsCold, 20) + GasDataLoad*toWordSize(length.Uint64())
	if !it.chargeGas(cost) {
		return
	}
	var code []byte
	if loaded.Data != nil {
		code = loaded.Data.Code()[:loaded.Data.OriginalLength()]
	}
	it.Memory.WriteData(memOffset.Uint64(), codeOffset.Uint64(), length.Uint64(), code)
}

func opReturnDataSize(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(WordFromUint64(uint64(len(it.ReturnDataBuffer))))
}

func opReturnDataCopy(it *Interpreter, _ OpCode) {
	if !it.requireStack(3, 0) {
		return
	}
	memOffset, dataOffset, length := it.Stack.pop(), it.Stack.pop(), it.Stack.pop()
	end := new(uint256.Int).Add(&dataOffset, &length)
	if end.Gt(WordFromUint64(uint64(len(it.ReturnDataBuffer)))) {
		it.fail(StatusInvalidOffset, ErrInvalidOffset)
		return
	}
	if !it.resize(memOffset.Uint64() + length.Uint64()) {
		return
	}
	cost := GasFastestStep + GasDataLoad*toWordSize(length.Uint64())
	if !it.chargeGas(cost) {
		return
	}
	it.Memory.Write(memOffset.Uint64(), it.ReturnDataBuffer[dataOffset.Uint64():end.Uint64()])
}

func opExtCodeHash(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) {
		return
	}
	addrWord := it.Stack.peek()
	addr := WordToAddress(addrWord)
	loaded, exists := it.Host.CodeHash(addr)
	cost := coldWarmCost(it.SpecID, loaded.IsCold, 400)
	if !it.chargeGas(cost) {
		return
	}
	if !exists {
		addrWord.Clear()
		return
	}
	addrWord.Set(HashToWord(loaded.Data))
}

func opSelfBalance(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasFastStep) {
		return
	}
	loaded, _ := it.Host.Balance(it.Contract.Address)
	it.Stack.push(&loaded.Data)
}

// getDataBytes reads size bytes from data starting at offset, zero-padding
// past the end - the shared primitive behind CALLDATALOAD and friends.
func getDataBytes(data []byte, offset uint64, size uint64) []byte {
	if offset > uint64(len(data)) {
		offset = uint64(len(data))
	}
	end := offset + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	out := make([]byte, size)
	copy(out, data[offset:end])
	return out
}
