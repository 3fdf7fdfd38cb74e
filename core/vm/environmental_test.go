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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/ethereum/go-evmcore/common"
)

func TestOpAddressPushesContractAddress(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Contract.Address = common.BytesToAddress([]byte{0x11})
	opAddress(it, ADDRESS)
	assert.True(t, top(it).Eq(AddressToWord(it.Contract.Address)))
}

func TestOpCallerPushesCallerAddress(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Contract.CallerAddress = common.BytesToAddress([]byte{0x22})
	opCaller(it, CALLER)
	assert.True(t, top(it).Eq(AddressToWord(it.Contract.CallerAddress)))
}

func TestOpCallValuePushesValue(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Contract.Value = *u64(77)
	opCallValue(it, CALLVALUE)
	assert.True(t, top(it).Eq(u64(77)))
}

func TestOpCallDataLoadZeroPadsPastInput(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Contract.Input = []byte{0xff}
	pushWords(it, u64(0))
	opCallDataLoad(it, CALLDATALOAD)
	want := new(uint256.Int).SetBytes([]byte{0xff})
	want.Lsh(want, 248)
	assert.True(t, top(it).Eq(want))
}

func TestOpCallDataSize(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Contract.Input = []byte{1, 2, 3}
	opCallDataSize(it, CALLDATASIZE)
	assert.True(t, top(it).Eq(u64(3)))
}

func TestOpCallDataCopyWritesIntoMemory(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Contract.Input = []byte{0xaa, 0xbb, 0xcc}
	pushWords(it, u64(3), u64(0), u64(0)) // stack bottom->top: [length, dataOffset, memOffset]
	opCallDataCopy(it, CALLDATACOPY)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, it.Memory.GetCopy(0, 3))
}

func TestOpCodeSizeExcludesAnalysisPadding(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(STOP)}
	it := newOpInterpreter(code)
	opCodeSize(it, CODESIZE)
	assert.True(t, top(it).Eq(u64(uint64(len(code)))))
}

func TestOpCodeCopyReadsOwnCode(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(STOP)}
	it := newOpInterpreter(code)
	pushWords(it, u64(3), u64(0), u64(0)) // stack bottom->top: [length, codeOffset, memOffset]
	opCodeCopy(it, CODECOPY)
	assert.Equal(t, code, it.Memory.GetCopy(0, 3))
}

func TestOpGasPriceReadsEnvironment(t *testing.T) {
	host := newStubHost()
	host.env.Tx.GasPrice = *u64(42)
	it := newOpInterpreterWithHost(nil, host)
	opGasPrice(it, GASPRICE)
	assert.True(t, top(it).Eq(u64(42)))
}

func TestOpBalanceReadsHostAndChargesColdCost(t *testing.T) {
	host := newStubHost()
	addr := common.BytesToAddress([]byte{0x33})
	host.balances[addr] = *u64(500)
	it := newOpInterpreterWithHost(nil, host)
	pushWords(it, AddressToWord(addr))
	opBalance(it, BALANCE)
	assert.True(t, top(it).Eq(u64(500)))
	assert.EqualValues(t, GasColdAccountAccess, it.Gas.Used())
}

func TestOpExtCodeSizeMissingAccountIsZero(t *testing.T) {
	host := newStubHost()
	it := newOpInterpreterWithHost(nil, host)
	pushWords(it, AddressToWord(common.BytesToAddress([]byte{0x44})))
	opExtCodeSize(it, EXTCODESIZE)
	assert.True(t, top(it).IsZero())
}

func TestOpExtCodeHashMissingAccountIsZero(t *testing.T) {
	host := newStubHost()
	it := newOpInterpreterWithHost(nil, host)
	pushWords(it, AddressToWord(common.BytesToAddress([]byte{0x55})))
	opExtCodeHash(it, EXTCODEHASH)
	assert.True(t, top(it).IsZero())
}

func TestOpReturnDataSizeAndCopy(t *testing.T) {
	it := newOpInterpreter(nil)
	it.ReturnDataBuffer = []byte{9, 8, 7}
	opReturnDataSize(it, RETURNDATASIZE)
	assert.True(t, top(it).Eq(u64(3)))
	it.Stack.pop()

	pushWords(it, u64(3), u64(0), u64(0)) // stack bottom->top: [length, dataOffset, memOffset]
	opReturnDataCopy(it, RETURNDATACOPY)
	assert.Equal(t, []byte{9, 8, 7}, it.Memory.GetCopy(0, 3))
}

func TestOpReturnDataCopyPastEndFails(t *testing.T) {
	it := newOpInterpreter(nil)
	it.ReturnDataBuffer = []byte{1}
	pushWords(it, u64(10), u64(0), u64(0)) // stack bottom->top: [length, dataOffset, memOffset]
	opReturnDataCopy(it, RETURNDATACOPY)
	assert.Equal(t, StatusInvalidOffset, it.Status)
}

func TestOpSelfBalanceReadsOwnBalance(t *testing.T) {
	host := newStubHost()
	addr := common.BytesToAddress([]byte{0x66})
	host.balances[addr] = *u64(11)
	it := newOpInterpreterWithHost(nil, host)
	it.Contract.Address = addr
	opSelfBalance(it, SELFBALANCE)
	assert.True(t, top(it).Eq(u64(11)))
}
