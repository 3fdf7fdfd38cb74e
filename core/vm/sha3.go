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

import "github.com/ethereum/go-evmcore/crypto"

func opKeccak256(it *Interpreter, _ OpCode) {
	if !it.requireStack(2, 1) {
		return
	}
	offset, size := it.Stack.pop(), it.Stack.peek()
	if !it.resize(offset.Uint64() + size.Uint64()) {
		return
	}
	cost := GasKeccak256 + GasKeccak256Word*toWordSize(size.Uint64())
	if !it.chargeGas(cost) {
		return
	}
	data := it.Memory.GetPtr(offset.Uint64(), size.Uint64())
	hash := crypto.Keccak256(data)
	size.SetBytes(hash)
}
