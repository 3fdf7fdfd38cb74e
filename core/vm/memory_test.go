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

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResizeZeroFillsNewRegion(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Resize(64, 0))
	assert.Equal(t, 64, m.Len())
	for _, b := range m.Data() {
		assert.Equal(t, byte(0), b)
	}
}

func TestMemoryResizeIsIdempotentBelowCurrentLength(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Resize(64, 0))
	m.WriteByte(0, 0xaa)
	require.NoError(t, m.Resize(32, 0))
	assert.Equal(t, byte(0xaa), m.GetByte(0), "shrinking below current length must be a no-op")
	assert.Equal(t, 64, m.Len())
}

func TestMemoryResizeRespectsLimit(t *testing.T) {
	m := NewMemory()
	err := m.Resize(1024, 512)
	require.Error(t, err)
	var tooBig *MaxMemoryReached
	assert.ErrorAs(t, err, &tooBig)
	assert.Equal(t, uint64(1024), tooBig.Requested)
	assert.Equal(t, uint64(512), tooBig.Limit)
}

func TestMemoryWriteWordAndGetWord(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Resize(32, 0))
	val := WordFromUint64(0xdeadbeef)
	m.WriteWord(0, val)

	var got uint256.Int
	m.GetWord(0, &got)
	assert.True(t, got.Eq(val))
}

func TestMemoryWriteDataZeroPadsShortSource(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Resize(32, 0))
	src := []byte{1, 2, 3}
	m.WriteData(0, 0, 32, src)

	got := m.GetCopy(0, 32)
	assert.Equal(t, []byte{1, 2, 3}, got[:3])
	for _, b := range got[3:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestMemoryWriteDataOffsetPastSourceIsAllZero(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Resize(32, 0))
	src := []byte{1, 2, 3}
	m.WriteData(0, 100, 32, src)

	got := m.GetCopy(0, 32)
	for _, b := range got {
		assert.Equal(t, byte(0), b)
	}
}

func TestMemoryCopyHandlesOverlap(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Resize(64, 0))
	m.Write(0, []byte{1, 2, 3, 4, 5})
	m.Copy(2, 0, 5) // overlapping forward copy, as MCOPY allows.

	got := m.GetCopy(0, 7)
	assert.Equal(t, []byte{1, 2, 1, 2, 3, 4, 5}, got)
}

func TestMemoryGetCopyZeroSizeReturnsNil(t *testing.T) {
	m := NewMemory()
	assert.Nil(t, m.GetCopy(0, 0))
}

func TestMemoryContextCheckpointIsolatesChildWrites(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Resize(32, 0))
	m.WriteByte(0, 0xaa)

	m.NewContext()
	require.NoError(t, m.Resize(64, 0))
	m.WriteByte(32, 0xbb)
	assert.Equal(t, 64, m.Len())

	m.FreeContext()
	assert.Equal(t, 32, m.Len(), "child frame's memory growth must not leak into the parent")
	assert.Equal(t, byte(0xaa), m.GetByte(0))
}

func TestToWordSizeRoundsUp(t *testing.T) {
	assert.Equal(t, uint64(0), toWordSize(0))
	assert.Equal(t, uint64(1), toWordSize(1))
	assert.Equal(t, uint64(1), toWordSize(32))
	assert.Equal(t, uint64(2), toWordSize(33))
}
