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

// Every arithmetic/comparison/bitwise handler follows the same shape:
// verify stack shape, charge the fixed step cost, pop operands, compute,
// push the result. None of them touch memory, storage or the host - they
// are pure functions of their stack inputs, as the spec requires.

func opAdd(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.Add(&x, y)
}

func opMul(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.Mul(&x, y)
}

func opSub(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.Sub(&x, y)
}

func opDiv(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.Div(&x, y)
}

func opSdiv(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.SDiv(&x, y)
}

func opMod(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.Mod(&x, y)
}

func opSmod(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.SMod(&x, y)
}

func opAddmod(it *Interpreter, _ OpCode) {
	if !it.requireStack(3, 1) || !it.chargeGas(GasMidStep) {
		return
	}
	x, y, z := it.Stack.pop(), it.Stack.pop(), it.Stack.peek()
	z.AddMod(&x, &y, z)
}

func opMulmod(it *Interpreter, _ OpCode) {
	if !it.requireStack(3, 1) || !it.chargeGas(GasMidStep) {
		return
	}
	x, y, z := it.Stack.pop(), it.Stack.pop(), it.Stack.peek()
	z.MulMod(&x, &y, z)
}

func opExp(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) {
		return
	}
	base, exponent := it.Stack.pop(), it.Stack.peek()
	cost := GasSlowStep + expByteCost(it.SpecID)*uint64(exponentByteLen(exponent))
	if !it.chargeGas(cost) {
		return
	}
	exponent.Exp(&base, exponent)
}

func exponentByteLen(e *uint256.Int) int {
	return (e.BitLen() + 7) / 8
}

func expByteCost(spec params.SpecId) uint64 {
	if params.Enabled(spec, params.SPURIOUS_DRAGON) {
		return 50
	}
	return 10
}

func opSignExtend(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastStep) {
		return
	}
	byteNum, word := it.Stack.pop(), it.Stack.peek()
	word.Set(signExtend(&byteNum, word))
}

func opLt(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
}

func opGt(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
}

func opSlt(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
}

func opSgt(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
}

func opEq(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
}

func opIszero(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x := it.Stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
}

func opAnd(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.And(&x, y)
}

func opOr(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.Or(&x, y)
}

func opXor(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x, y := it.Stack.pop(), it.Stack.peek()
	y.Xor(&x, y)
}

func opNot(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	x := it.Stack.peek()
	x.Not(x)
}

func opByte(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	n, word := it.Stack.pop(), it.Stack.peek()
	word.Set(byteAt(&n, word))
}

func opShl(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	shift, value := it.Stack.pop(), it.Stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
}

func opShr(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	shift, value := it.Stack.pop(), it.Stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
}

func opSar(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	shift, value := it.Stack.pop(), it.Stack.peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
}
