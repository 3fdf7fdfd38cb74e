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

	"github.com/ethereum/go-evmcore/crypto"
	"github.com/ethereum/go-evmcore/params"
)

func opReturn(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 0) {
		return
	}
	offset, size := it.Stack.pop(), it.Stack.pop()
	if !it.resize(offset.Uint64() + size.Uint64()) {
		return
	}
	it.ReturnDataBuffer = it.Memory.GetCopy(offset.Uint64(), size.Uint64())
	it.Status = StatusReturned
}

func opRevert(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 0) {
		return
	}
	offset, size := it.Stack.pop(), it.Stack.pop()
	if !it.resize(offset.Uint64() + size.Uint64()) {
		return
	}
	it.ReturnDataBuffer = it.Memory.GetCopy(offset.Uint64(), size.Uint64())
	it.Status = StatusReverted
}

func opSelfDestruct(it *Interpreter, _ OpCode) {
	if !it.requireNotStatic() || !it.requireStack(1, 0) {
		return
	}
	targetWord := it.Stack.pop()
	target := WordToAddress(&targetWord)

	loaded, err := it.Host.SelfDestruct(it.Contract.Address, target)
	if err != nil {
		it.fail(StatusInvalid, err)
		return
	}
	cost := GasSelfdestruct
	if params.Enabled(it.SpecID, params.TANGERINE) {
		if !loaded.Data.TargetExisted && loaded.Data.HadValue && params.Enabled(it.SpecID, params.SPURIOUS_DRAGON) {
			cost += GasNewAccount
		}
		if params.Enabled(it.SpecID, params.BERLIN) && loaded.IsCold {
			cost += GasColdAccountAccess
		}
	}
	if !it.chargeGas(cost) {
		return
	}
	if !loaded.Data.PreviouslyDestructed && !it.Host.Environment().Config.DisableGasRefund && !params.Enabled(it.SpecID, params.LONDON) {
		it.Gas.AddRefund(24000)
	}
	it.Status = StatusSelfDestructed
}

// callGas implements the EIP-150 63/64 forwarding rule: the callee
// receives min(requested, remaining - remaining/64).
func callGas(remaining, requested uint64) uint64 {
	capped := remaining - remaining/64
	if requested > capped || requested == 0 {
		return capped
	}
	return requested
}

func opCall(it *Interpreter, _ OpCode) {
	dispatchCall(it, SchemeCall, true)
}

func opCallCode(it *Interpreter, _ OpCode) {
	dispatchCall(it, SchemeCallCode, true)
}

func opDelegateCall(it *Interpreter, _ OpCode) {
	dispatchCall(it, SchemeDelegateCall, false)
}

func opStaticCall(it *Interpreter, _ OpCode) {
	dispatchCall(it, SchemeStaticCall, false)
}

// dispatchCall implements the shared shape of all four CALL-family
// opcodes: pop the scheme-dependent argument list, validate the static
// frame's value constraint, read calldata from memory, and suspend the
// frame with a call action for the outer driver to service.
func dispatchCall(it *Interpreter, scheme CallScheme, hasValue bool) {
	wantArgs := 6
	if hasValue {
		wantArgs = 7
	}
	if !it.requireStack(wantArgs, 1) {
		return
	}
	gasWord := it.Stack.pop()
	addrWord := it.Stack.pop()
	target := WordToAddress(&addrWord)

	var value uint256.Int
	if hasValue {
		value = it.Stack.pop()
	}
	argsOffset, argsSize := it.Stack.pop(), it.Stack.pop()
	retOffset, retSize := it.Stack.pop(), it.Stack.pop()

	if scheme == SchemeCall && it.IsStatic && !value.IsZero() {
		it.fail(StatusCallWithValueNotAllowedInStaticCall, ErrCallWithValueNotAllowedInStaticCall)
		return
	}

	end := argsOffset.Uint64() + argsSize.Uint64()
	if r := retOffset.Uint64() + retSize.Uint64(); r > end {
		end = r
	}
	if !it.resize(end) {
		return
	}

	loaded, _ := it.Host.LoadAccount(target)
	base := uint64(700)
	if !params.Enabled(it.SpecID, params.TANGERINE) {
		base = 40
	}
	cost := coldWarmCost(it.SpecID, loaded.IsCold, base)
	if hasValue && !value.IsZero() {
		cost += GasCallValue
	}
	if loaded.IsNew && (hasValue && !value.IsZero() || scheme == SchemeCallCode) {
		cost += GasNewAccount
	}
	if !it.chargeGas(cost) {
		return
	}

	requested := callGas(it.Gas.Available(), gasWord.Uint64())
	if !it.chargeGas(requested) {
		return
	}
	stipend := uint64(0)
	if hasValue && !value.IsZero() {
		stipend = GasCallStipend
	}
	forwarded := requested + stipend

	inputs := it.Memory.GetCopy(argsOffset.Uint64(), argsSize.Uint64())

	caller := it.Contract.Address
	callValue := Transfer(value)
	isStatic := it.IsStatic || scheme == SchemeStaticCall
	bytecodeAddress := target
	targetAddress := target
	if scheme == SchemeDelegateCall {
		targetAddress = it.Contract.Address
		caller = it.Contract.CallerAddress
		callValue = Limbo(it.Contract.Value)
	} else if scheme == SchemeCallCode {
		targetAddress = it.Contract.Address
	}

	it.NextAction = CallActionOf(CallAction{
		Inputs:             inputs,
		ReturnMemoryOffset: MemoryOffset{Offset: retOffset.Uint64(), Length: retSize.Uint64()},
		GasLimit:           forwarded,
		BytecodeAddress:    bytecodeAddress,
		TargetAddress:      targetAddress,
		Caller:             caller,
		Value:              callValue,
		Scheme:             scheme,
		IsStatic:           isStatic,
	})
	it.Status = StatusCallOrCreate
}

func opCreate(it *Interpreter, _ OpCode) {
	dispatchCreate(it, false)
}

func opCreate2(it *Interpreter, _ OpCode) {
	dispatchCreate(it, true)
}

func dispatchCreate(it *Interpreter, isCreate2 bool) {
	wantArgs := 3
	if isCreate2 {
		wantArgs = 4
	}
	if !it.requireNotStatic() || !it.requireStack(wantArgs, 1) {
		return
	}
	value, offset, size := it.Stack.pop(), it.Stack.pop(), it.Stack.pop()
	scheme := CreateScheme{}
	if isCreate2 {
		scheme.IsCreate2 = true
		scheme.Salt = it.Stack.pop()
	}

	if !it.resize(offset.Uint64() + size.Uint64()) {
		return
	}
	shanghai := params.Enabled(it.SpecID, params.SHANGHAI)
	if shanghai {
		limit := it.Host.Environment().Config.LimitContractSize
		if limit != nil && size.Uint64() > uint64(*limit)*2 {
			it.fail(StatusCreateCodeSizeLimit, ErrCreateCodeSizeLimit)
			return
		}
	}
	cost := GasCreate
	if shanghai {
		cost += GasInitcodeWord * toWordSize(size.Uint64())
	}
	if scheme.IsCreate2 {
		cost += GasKeccak256Word * toWordSize(size.Uint64())
	}
	if !it.chargeGas(cost) {
		return
	}

	initCode := it.Memory.GetCopy(offset.Uint64(), size.Uint64())
	forwarded := callGas(it.Gas.Available(), it.Gas.Available())
	if !it.chargeGas(forwarded) {
		return
	}

	it.NextAction = CreateActionOf(CreateAction{
		Caller:   it.Contract.Address,
		Scheme:   scheme,
		Value:    value,
		InitCode: initCode,
		GasLimit: forwarded,
	})
	it.Status = StatusCallOrCreate
}

// DeriveCreateAddress computes the address CREATE assigns.
func DeriveCreateAddress(caller [20]byte, nonce uint64) [20]byte {
	return [20]byte(crypto.CreateAddress(caller, nonce))
}
