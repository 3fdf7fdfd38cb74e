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
	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/crypto"
	"github.com/ethereum/go-evmcore/params"
)

func newCreateInterpreter(spec params.SpecId, host Host) *Interpreter {
	c := NewContract(common.Address{}, common.Address{}, uint256.Int{}, NewRawBytecode(nil), common.Hash{}, nil)
	return NewInterpreter(c, host, InterpreterInitOptions{GasLimit: 10_000_000, SpecID: spec})
}

func TestCallGasForwardsRequestedWhenUnderCap(t *testing.T) {
	got := callGas(64_000, 1_000)
	assert.EqualValues(t, 1_000, got)
}

func TestCallGasCapsAtSixtyThreeSixtyFourths(t *testing.T) {
	got := callGas(64_000, 64_000)
	assert.EqualValues(t, 64_000-64_000/64, got)
}

func TestCallGasZeroRequestMeansForwardEverythingAvailable(t *testing.T) {
	got := callGas(64_000, 0)
	assert.EqualValues(t, 64_000-64_000/64, got)
}

func TestOpReturnSetsStatusAndOutput(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Memory.Resize(32, 0)
	it.Memory.WriteData(0, 0, 3, []byte{1, 2, 3})
	pushWords(it, u64(3), u64(0)) // stack bottom->top: [size, offset]
	opReturn(it, RETURN)
	assert.Equal(t, StatusReturned, it.Status)
	assert.Equal(t, []byte{1, 2, 3}, it.ReturnDataBuffer)
}

func TestOpRevertSetsStatusAndOutput(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Memory.Resize(32, 0)
	it.Memory.WriteData(0, 0, 2, []byte{9, 9})
	pushWords(it, u64(2), u64(0))
	opRevert(it, REVERT)
	assert.Equal(t, StatusReverted, it.Status)
	assert.Equal(t, []byte{9, 9}, it.ReturnDataBuffer)
}

func TestOpSelfDestructSuspendsViaHost(t *testing.T) {
	host := newStubHost()
	target := common.BytesToAddress([]byte{0x09})
	it := newOpInterpreterWithHost(nil, host)
	pushWords(it, AddressToWord(target))
	opSelfDestruct(it, SELFDESTRUCT)
	assert.Equal(t, StatusSelfDestructed, it.Status)
}

func TestOpSelfDestructRejectedInStaticCall(t *testing.T) {
	host := newStubHost()
	it := newOpInterpreterWithHost(nil, host)
	it.IsStatic = true
	pushWords(it, AddressToWord(common.BytesToAddress([]byte{0x09})))
	opSelfDestruct(it, SELFDESTRUCT)
	assert.Equal(t, StatusCallWithValueNotAllowedInStaticCall, it.Status)
}

func TestDispatchCallSuspendsWithCallAction(t *testing.T) {
	host := newStubHost()
	it := newOpInterpreterWithHost(nil, host)
	target := common.BytesToAddress([]byte{0x55})
	// CALL pops (in pop order): gas, addr, value, argsOffset, argsSize,
	// retOffset, retSize - so push in the reverse order, retSize first.
	pushWords(it,
		u64(0),                // retSize
		u64(0),                // retOffset
		u64(0),                // argsSize
		u64(0),                // argsOffset
		u64(0),                // value
		AddressToWord(target), // addr
		u64(100_000),          // gas
	)
	opCall(it, CALL)
	require.Equal(t, StatusCallOrCreate, it.Status)
	action, ok := it.NextAction.Call()
	require.True(t, ok)
	assert.Equal(t, target, action.TargetAddress)
	assert.Equal(t, SchemeCall, action.Scheme)
}

func TestDispatchCreateSuspendsWithCreateAction(t *testing.T) {
	host := newStubHost()
	it := newOpInterpreterWithHost(nil, host)
	it.Memory.Resize(32, 0)
	it.Memory.WriteData(0, 0, 1, []byte{0xfe})
	// CREATE pops: value, offset, size.
	pushWords(it, u64(1), u64(0), u64(0)) // stack bottom->top: [size, offset, value]
	opCreate(it, CREATE)
	require.Equal(t, StatusCallOrCreate, it.Status)
	action, ok := it.NextAction.Create()
	require.True(t, ok)
	assert.Equal(t, []byte{0xfe}, action.InitCode)
	assert.False(t, action.Scheme.IsCreate2)
}

func TestDispatchCreatePreShanghaiSkipsInitCodeSizeCapAndWordCost(t *testing.T) {
	host := newStubHost()
	limit := 1
	host.env.Config.LimitContractSize = &limit

	it := newCreateInterpreter(params.LONDON, host)
	it.Memory.Resize(128, 0)
	// size=100 exceeds 2*limit=2, which would trip the Shanghai-only cap.
	pushWords(it, u64(100), u64(0), u64(0)) // stack bottom->top: [size, offset, value]
	before := it.Gas.Available()
	opCreate(it, CREATE)
	require.Equal(t, StatusCallOrCreate, it.Status, "pre-Shanghai CREATE must not enforce the EIP-3860 size cap")

	action, ok := it.NextAction.Create()
	require.True(t, ok)
	baseUsed := before - it.Gas.Available() - action.GasLimit
	assert.EqualValues(t, GasCreate, baseUsed, "pre-Shanghai CREATE must not charge the EIP-3860 init-code word cost")
}

func TestDispatchCreateShanghaiEnforcesInitCodeSizeCap(t *testing.T) {
	host := newStubHost()
	limit := 1
	host.env.Config.LimitContractSize = &limit

	it := newCreateInterpreter(params.SHANGHAI, host)
	it.Memory.Resize(128, 0)
	pushWords(it, u64(100), u64(0), u64(0))
	opCreate(it, CREATE)
	assert.Equal(t, StatusCreateCodeSizeLimit, it.Status)
}

func TestDispatchCreateShanghaiChargesInitCodeWordCost(t *testing.T) {
	host := newStubHost()
	it := newCreateInterpreter(params.SHANGHAI, host)
	it.Memory.Resize(64, 0)
	pushWords(it, u64(32), u64(0), u64(0)) // size=32: exactly one word
	before := it.Gas.Available()
	opCreate(it, CREATE)
	require.Equal(t, StatusCallOrCreate, it.Status)

	action, ok := it.NextAction.Create()
	require.True(t, ok)
	baseUsed := before - it.Gas.Available() - action.GasLimit
	assert.EqualValues(t, GasCreate+GasInitcodeWord, baseUsed)
}

func TestDeriveCreateAddressMatchesCrypto(t *testing.T) {
	var caller [20]byte
	copy(caller[:], []byte{0x01})
	got := DeriveCreateAddress(caller, 5)
	want := crypto.CreateAddress(caller, 5)
	assert.Equal(t, [20]byte(want), got)
}
