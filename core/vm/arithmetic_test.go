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
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

// top() reads the stack without mutating it, for asserting a single binary
// op's result, pushed in place of its two operands.
func top(it *Interpreter) *uint256.Int { return it.Stack.peek() }

func TestOpAddWraps(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(1), u64(2))
	opAdd(it, ADD)
	assert.True(t, top(it).Eq(u64(3)))
	assert.EqualValues(t, 1, it.Stack.len())
}

func TestOpSubComputesTopMinusSecond(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(2), u64(5)) // stack: [2, 5] (5 on top)
	opSub(it, SUB)
	assert.True(t, top(it).Eq(u64(3)), "SUB must compute top-of-stack minus second")
}

func TestOpDivByZeroIsZero(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0), u64(10)) // 10 on top: computes 10 / 0
	opDiv(it, DIV)
	assert.True(t, top(it).IsZero())
}

func TestOpSdivMinInt256ByMinusOneOverflowsToItself(t *testing.T) {
	it := newOpInterpreter(nil)
	minInt256 := new(uint256.Int).Lsh(u64(1), 255) // 2^255, the two's-complement MinInt256
	minusOne := new(uint256.Int).Not(uint256.NewInt(0))
	pushWords(it, minusOne, minInt256) // MinInt256 on top: computes MinInt256 / -1
	opSdiv(it, SDIV)
	assert.True(t, top(it).Eq(minInt256), "MinInt256 / -1 overflows back to MinInt256 per EVM semantics")
}

func TestOpModWraps(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(3), u64(7)) // 7 on top: computes 7 mod 3
	opMod(it, MOD)
	assert.True(t, top(it).Eq(u64(1)))
}

func TestOpAddmod(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(10), u64(5), u64(8)) // top is 8: computes (8+5) mod 10
	opAddmod(it, ADDMOD)
	// stack order bottom->top: 10,5,8. pop x=8,y=5,z(peek)=10 => AddMod(8,5,10) = 13 mod 10 = 3
	assert.True(t, top(it).Eq(u64(3)))
}

func TestOpMulmod(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(10), u64(4), u64(5)) // pop x=5,y=4,z=10(peek) -> MulMod(5,4,10)=20 mod 10=0
	opMulmod(it, MULMOD)
	assert.True(t, top(it).IsZero())
}

func TestOpExpSmall(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(2), u64(10)) // pop base=10(top), exponent=peek=2 -> 10^2=100
	opExp(it, EXP)
	assert.True(t, top(it).Eq(u64(100)))
}

func TestOpSignExtendNegative(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0xff), u64(0)) // byteNum=0(top), value has 0xff in low byte(peek)
	opSignExtend(it, SIGNEXTEND)
	allOnes := new(uint256.Int).Not(uint256.NewInt(0))
	assert.True(t, top(it).Eq(allOnes))
}

func TestOpLt(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(1), u64(2)) // pop x=2(top), y=1(peek) -> Lt(x=2,y=1)? method is x.Lt(y)
	opLt(it, LT)
	// EVM LT: a,b=pop(); push(a<b) where a=top=2, b=second=1 -> 2<1 = false
	assert.True(t, top(it).IsZero())
}

func TestOpGt(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(1), u64(2)) // a=top=2, b=second=1 -> 2>1 = true
	opGt(it, GT)
	assert.True(t, top(it).Eq(u64(1)))
}

func TestOpSlt(t *testing.T) {
	it := newOpInterpreter(nil)
	minusOne := new(uint256.Int).Not(uint256.NewInt(0)) // two's-complement -1
	pushWords(it, u64(1), minusOne)                     // x=top=-1, y=second=1 -> -1 < 1
	opSlt(it, SLT)
	assert.True(t, top(it).Eq(u64(1)), "SLT must compare as signed, not unsigned")
}

func TestOpSgt(t *testing.T) {
	it := newOpInterpreter(nil)
	minusOne := new(uint256.Int).Not(uint256.NewInt(0))
	pushWords(it, minusOne, u64(1)) // x=top=1, y=second=-1 -> 1 > -1
	opSgt(it, SGT)
	assert.True(t, top(it).Eq(u64(1)), "SGT must compare as signed, not unsigned")
}

func TestOpEq(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(5), u64(5))
	opEq(it, EQ)
	assert.True(t, top(it).Eq(u64(1)))
}

func TestOpIszero(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0))
	opIszero(it, ISZERO)
	assert.True(t, top(it).Eq(u64(1)))
}

func TestOpAnd(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0b1100), u64(0b1010))
	opAnd(it, AND)
	assert.True(t, top(it).Eq(u64(0b1000)))
}

func TestOpOr(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0b1100), u64(0b1010))
	opOr(it, OR)
	assert.True(t, top(it).Eq(u64(0b1110)))
}

func TestOpXor(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0b1100), u64(0b1010))
	opXor(it, XOR)
	assert.True(t, top(it).Eq(u64(0b0110)))
}

func TestOpNot(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0))
	opNot(it, NOT)
	allOnes := new(uint256.Int).Not(uint256.NewInt(0))
	assert.True(t, top(it).Eq(allOnes))
}

func TestOpByteExtractsMostSignificantFirst(t *testing.T) {
	it := newOpInterpreter(nil)
	value := u64(0x1122)
	pushWords(it, value, u64(31)) // n=31(top), word=peek=value -> least-significant byte
	opByte(it, BYTE)
	assert.True(t, top(it).Eq(u64(0x22)))
}

func TestOpByteOutOfRangeIsZero(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0xffffffff), u64(32))
	opByte(it, BYTE)
	assert.True(t, top(it).IsZero())
}

func TestOpShl(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(1), u64(4)) // shift=4(top), value=peek=1
	opShl(it, SHL)
	assert.True(t, top(it).Eq(u64(16)))
}

func TestOpShlLargeShiftIsZero(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(1), u64(256))
	opShl(it, SHL)
	assert.True(t, top(it).IsZero())
}

func TestOpShr(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(16), u64(4))
	opShr(it, SHR)
	assert.True(t, top(it).Eq(u64(1)))
}

func TestOpSarNegativeFillsOnes(t *testing.T) {
	it := newOpInterpreter(nil)
	minInt256 := new(uint256.Int).Lsh(u64(1), 255)
	pushWords(it, minInt256, u64(255))
	opSar(it, SAR)
	allOnes := new(uint256.Int).Not(uint256.NewInt(0))
	assert.True(t, top(it).Eq(allOnes), "arithmetic shift sign-extends with the sign bit, not zero")
}

func TestOpSarShiftOverflowNegativeIsAllOnes(t *testing.T) {
	it := newOpInterpreter(nil)
	minInt256 := new(uint256.Int).Lsh(u64(1), 255)
	pushWords(it, minInt256, u64(math.MaxUint64))
	opSar(it, SAR)
	allOnes := new(uint256.Int).Not(uint256.NewInt(0))
	assert.True(t, top(it).Eq(allOnes))
}

func TestArithmeticChargesFixedStepCost(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(1), u64(2))
	opAdd(it, ADD)
	assert.EqualValues(t, GasFastestStep, it.Gas.Used())
}
