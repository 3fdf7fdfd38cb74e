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

import "github.com/ethereum/go-evmcore/common"

func opLog(it *Interpreter, op OpCode) {
	if !it.requireNotStatic() {
		return
	}
	topicCount := int(op - LOG0)
	if !it.requireStack(2+topicCount, 0) {
		return
	}
	offset, size := it.Stack.pop(), it.Stack.pop()
	topics := make([]common.Hash, topicCount)
	for i := 0; i < topicCount; i++ {
		t := it.Stack.pop()
		topics[i] = WordToHash(&t)
	}
	if !it.resize(offset.Uint64() + size.Uint64()) {
		return
	}
	cost := GasLog + GasLogTopic*uint64(topicCount) + GasLogData*size.Uint64()
	if !it.chargeGas(cost) {
		return
	}
	data := it.Memory.GetCopy(offset.Uint64(), size.Uint64())
	if err := it.Host.Log(LogEvent{Address: it.Contract.Address, Topics: topics, Data: data}); err != nil {
		it.fail(StatusInvalid, err)
	}
}
