// Copyright 2015 The go-ethereum Authors
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
)

func TestStackPushPop(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(WordFromUint64(1))
	st.push(WordFromUint64(2))
	st.push(WordFromUint64(3))
	assert.Equal(t, 3, st.len())

	top := st.pop()
	assert.True(t, top.Eq(WordFromUint64(3)))
	assert.Equal(t, 2, st.len())
}

func TestStackPeekDoesNotRemove(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(WordFromUint64(42))
	assert.True(t, st.peek().Eq(WordFromUint64(42)))
	assert.Equal(t, 1, st.len())
}

func TestStackBackIsZeroIndexedFromTop(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(WordFromUint64(10))
	st.push(WordFromUint64(20))
	st.push(WordFromUint64(30))

	assert.True(t, st.Back(0).Eq(WordFromUint64(30)))
	assert.True(t, st.Back(1).Eq(WordFromUint64(20)))
	assert.True(t, st.Back(2).Eq(WordFromUint64(10)))
}

func TestStackSwap(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(WordFromUint64(1))
	st.push(WordFromUint64(2))
	st.push(WordFromUint64(3))

	st.swap(3) // SWAP2-style (opSwap passes n+1): exchange top with the 3rd-from-top.
	assert.True(t, st.Back(0).Eq(WordFromUint64(1)))
	assert.True(t, st.Back(2).Eq(WordFromUint64(3)))
}

func TestStackDup(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(WordFromUint64(7))
	st.push(WordFromUint64(8))
	st.dup(2) // DUP2-style: duplicate the 2nd-from-top onto the top.

	assert.Equal(t, 3, st.len())
	assert.True(t, st.Back(0).Eq(WordFromUint64(7)))
}

func TestStackDataReflectsBottomToTop(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(WordFromUint64(1))
	st.push(WordFromUint64(2))
	data := st.Data()
	require := assert.New(t)
	require.Len(data, 2)
	require.True(data[0].Eq(WordFromUint64(1)))
	require.True(data[1].Eq(WordFromUint64(2)))
}

func TestReturnStackResetsLength(t *testing.T) {
	st := newstack()
	st.push(WordFromUint64(1))
	returnStack(st)

	reused := newstack()
	defer returnStack(reused)
	assert.Equal(t, 0, reused.len())
}
