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

func opBlockHash(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) || !it.chargeGas(GasExtStep) {
		return
	}
	number := it.Stack.peek()
	hash, ok := it.Host.BlockHash(number.Uint64())
	if !ok {
		number.Clear()
		return
	}
	number.Set(HashToWord(hash))
}

func opCoinbase(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(AddressToWord(it.Host.Environment().Block.Coinbase))
}

func opTimestamp(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	ts := it.Host.Environment().Block.Timestamp
	it.Stack.push(&ts)
}

func opNumber(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	n := it.Host.Environment().Block.Number
	it.Stack.push(&n)
}

func opDifficulty(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	env := it.Host.Environment()
	if env.Block.Prevrandao != nil {
		it.Stack.push(env.Block.Prevrandao)
		return
	}
	d := env.Block.Difficulty
	it.Stack.push(&d)
}

func opGasLimit(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	gl := it.Host.Environment().Block.GasLimit
	it.Stack.push(&gl)
}

func opChainId(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	it.Stack.push(WordFromUint64(it.Host.Environment().Config.ChainID))
}

func opBaseFee(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	bf := it.Host.Environment().Block.BaseFee
	it.Stack.push(&bf)
}

func opBlobHash(it *Interpreter, _ OpCode) {
	if !it.requireStack(1, 1) || !it.chargeGas(GasFastestStep) {
		return
	}
	idx := it.Stack.peek()
	hashes := it.Host.Environment().Tx.BlobHashes
	i := idx.Uint64()
	if i >= uint64(len(hashes)) {
		idx.Clear()
		return
	}
	idx.Set(HashToWord(hashes[i]))
}

func opBlobBaseFee(it *Interpreter, _ OpCode) {
	if !it.requireStack(0, 1) || !it.chargeGas(GasQuickStep) {
		return
	}
	info := it.Host.Environment().Block.BlobExcessGasAndPrice
	if info == nil {
		it.Stack.push(NewWord())
		return
	}
	it.Stack.push(&info.BlobGasPrice)
}
