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

	"github.com/stretchr/testify/assert"

	"github.com/ethereum/go-evmcore/crypto"
)

func TestOpKeccak256HashesMemoryRegion(t *testing.T) {
	it := newOpInterpreter(nil)
	it.Memory.Resize(32, 0)
	it.Memory.WriteData(0, 0, 3, []byte{1, 2, 3})
	pushWords(it, u64(3), u64(0)) // stack bottom->top: [size, offset]
	opKeccak256(it, KECCAK256)
	want := crypto.Keccak256([]byte{1, 2, 3})
	got := top(it).Bytes32()
	assert.Equal(t, want, got[:])
}

func TestOpKeccak256EmptyInput(t *testing.T) {
	it := newOpInterpreter(nil)
	pushWords(it, u64(0), u64(0))
	opKeccak256(it, KECCAK256)
	want := crypto.Keccak256(nil)
	got := top(it).Bytes32()
	assert.Equal(t, want, got[:])
}
