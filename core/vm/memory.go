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
	"fmt"

	"github.com/holiman/uint256"
)

// defaultMemoryCapacity is the initial backing-array size a fresh Memory
// allocates, chosen to avoid a reallocation for the common case of small
// contracts.
const defaultMemoryCapacity = 4096

// Memory is a word-addressable, expandable byte buffer. It supports a stack
// of "context" checkpoints so that a CALL/CREATE sub-action can carve out a
// private window that a child frame cannot see or corrupt, mirroring the
// call-stack's own nesting without needing a brand new allocation per frame.
type Memory struct {
	store       []byte
	lastGasCost uint64
	checkpoints []uint64
}

// NewMemory returns an empty Memory with a sane initial allocation.
func NewMemory() *Memory {
	return &Memory{store: make([]byte, 0, defaultMemoryCapacity)}
}

// MaxMemoryReached is returned by Resize when memory_limit would be exceeded.
type MaxMemoryReached struct {
	Requested, Limit uint64
}

func (e *MaxMemoryReached) Error() string {
	return fmt.Sprintf("resizing memory to %d bytes exceeds limit %d", e.Requested, e.Limit)
}

// Resize grows the buffer so that Len() >= size, zero-filling the new
// region. size must already be word-aligned (a multiple of 32); callers
// compute that via toWordSize before calling. limit of 0 means unbounded.
func (m *Memory) Resize(size, limit uint64) error {
	if size <= uint64(len(m.store)) {
		return nil
	}
	if limit != 0 && size > limit {
		return &MaxMemoryReached{Requested: size, Limit: limit}
	}
	if cap(m.store) >= int(size) {
		m.store = m.store[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, m.store)
	m.store = grown
	return nil
}

// Len returns the number of bytes currently allocated (not context-relative:
// the full buffer length, not reduced by any active checkpoint).
func (m *Memory) Len() int { return len(m.store) }

// Data returns the whole backing buffer. Callers must not retain or mutate it.
func (m *Memory) Data() []byte { return m.store }

// NewContext pushes the current length as a checkpoint marking the start of
// a new call's private memory window.
func (m *Memory) NewContext() {
	m.checkpoints = append(m.checkpoints, uint64(len(m.store)))
}

// FreeContext pops the most recent checkpoint and truncates the logical
// buffer back to it, discarding everything the child frame wrote.
func (m *Memory) FreeContext() {
	n := len(m.checkpoints)
	if n == 0 {
		return
	}
	boundary := m.checkpoints[n-1]
	m.checkpoints = m.checkpoints[:n-1]
	m.store = m.store[:boundary]
}

// contextStart returns the checkpoint of the active context, or 0 if none.
func (m *Memory) contextStart() uint64 {
	if len(m.checkpoints) == 0 {
		return 0
	}
	return m.checkpoints[len(m.checkpoints)-1]
}

// GetSlice returns the region from the current context's checkpoint to the
// end of memory. Callers must not mutate or retain the slice past the next
// write.
func (m *Memory) GetSlice() []byte {
	return m.store[m.contextStart():]
}

// GetCopy returns a fresh copy of size bytes starting at offset. A zero size
// returns nil without touching memory, matching the EVM's "no side effect on
// a zero-length access" convention.
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out
}

// GetPtr returns a direct slice into memory; callers must treat it as
// read-only and must not hold onto it across a further memory write.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// GetByte reads a single byte at offset.
func (m *Memory) GetByte(offset uint64) byte {
	return m.store[offset]
}

// GetWord reads 32 bytes at offset into dst.
func (m *Memory) GetWord(offset uint64, dst *uint256.Int) {
	dst.SetBytes(m.store[offset : offset+32])
}

// WriteByte writes a single byte at offset.
func (m *Memory) WriteByte(offset uint64, b byte) {
	m.store[offset] = b
}

// WriteWord writes a big-endian 256-bit word at offset, exactly 32 bytes.
func (m *Memory) WriteWord(offset uint64, val *uint256.Int) {
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// Write copies data verbatim into memory starting at offset.
func (m *Memory) Write(offset uint64, data []byte) {
	if len(data) == 0 {
		return
	}
	copy(m.store[offset:offset+uint64(len(data))], data)
}

// WriteData reads `len` bytes from src starting at dataOffset and writes
// them at memOffset, zero-padding if src is shorter than dataOffset+len.
// This is the workhorse behind CALLDATACOPY, CODECOPY, EXTCODECOPY and
// RETURNDATACOPY.
func (m *Memory) WriteData(memOffset, dataOffset, length uint64, src []byte) {
	if length == 0 {
		return
	}
	if dataOffset > uint64(len(src)) {
		dataOffset = uint64(len(src))
	}
	end := dataOffset + length
	if end > uint64(len(src)) {
		end = uint64(len(src))
	}
	copy(m.store[memOffset:memOffset+length], src[dataOffset:end])
	if got := end - dataOffset; got < length {
		clear(m.store[memOffset+got : memOffset+length])
	}
}

// Copy moves `length` bytes from src to dst within memory, correctly
// handling overlap (used by MCOPY).
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	copy(m.store[dst:dst+length], m.store[src:src+length])
}

// toWordSize rounds size up to a whole number of 32-byte words.
func toWordSize(size uint64) uint64 {
	if size > ^uint64(0)-31 {
		return ^uint64(0)/32 + 1
	}
	return (size + 31) / 32
}
