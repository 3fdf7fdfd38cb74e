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
	"sync"

	"github.com/holiman/uint256"
)

// stackLimit is the maximum number of items the evaluation stack may hold.
const stackLimit = 1024

// Stack is a fixed-capacity LIFO of 256-bit words. The zero value is not
// usable; obtain one from newstack so pooling can be shared across frames.
type Stack struct {
	data []uint256.Int
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// newstack returns a Stack pulled from the shared pool.
func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

// returnStack resets and returns a Stack to the shared pool.
func returnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// Data returns the stack's underlying items, bottom first. Callers must not
// modify the returned slice.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

// push appends a word to the top of the stack. The caller must have already
// verified capacity via the interpreter's requireStack check.
func (st *Stack) push(d *uint256.Int) {
	st.data = append(st.data, *d)
}

func (st *Stack) pop() (ret uint256.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

func (st *Stack) len() int {
	return len(st.data)
}

func (st *Stack) swap(n int) {
	st.data[st.len()-n], st.data[st.len()-1] = st.data[st.len()-1], st.data[st.len()-n]
}

func (st *Stack) dup(n int) {
	st.push(&st.data[st.len()-n])
}

// peek returns the top element without removing it.
func (st *Stack) peek() *uint256.Int {
	return &st.data[st.len()-1]
}

// Back returns the n-th element from the top, 0-indexed (0 = top).
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[st.len()-n-1]
}
