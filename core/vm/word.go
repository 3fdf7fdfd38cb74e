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
	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/common"
)

// Word is the 256-bit unsigned integer used for every stack slot, storage
// key/value and memory word. The heavy lifting - wrapping add/sub/mul,
// unsigned and signed div/mod, addmod/mulmod, exp, bitwise ops and shifts -
// is delegated to uint256.Int, which already implements EVM semantics
// (division and modulo by zero yield zero, shifts by >=256 clamp). This file
// only adds the handful of conversions and sign-aware helpers the
// instruction set needs on top of it.
type Word = uint256.Int

// NewWord returns a zero-valued Word.
func NewWord() *Word { return new(uint256.Int) }

// WordFromUint64 builds a Word from a small unsigned integer.
func WordFromUint64(v uint64) *Word { return new(uint256.Int).SetUint64(v) }

// WordFromBytes builds a Word from a big-endian byte slice.
func WordFromBytes(b []byte) *Word { return new(uint256.Int).SetBytes(b) }

// WordToHash renders a word as a 32-byte big-endian hash, the representation
// used for storage keys/values.
func WordToHash(w *Word) common.Hash {
	b := w.Bytes32()
	return common.Hash(b)
}

// HashToWord is the inverse of WordToHash.
func HashToWord(h common.Hash) *Word {
	return new(uint256.Int).SetBytes32(h[:])
}

// WordToAddress truncates a word to its low 20 bytes, the representation
// used by CALL-family opcodes and ADDRESS-producing opcodes.
func WordToAddress(w *Word) common.Address {
	b := w.Bytes20()
	return common.Address(b)
}

// AddressToWord left-pads an address into a word.
func AddressToWord(a common.Address) *Word {
	return new(uint256.Int).SetBytes(a[:])
}

// signExtend implements the SIGNEXTEND opcode: given the 0-indexed byte
// position `byteNum` (counting from the least significant byte) of `word`,
// sign-extends everything above that byte using the sign bit found there.
// byteNum >= 31 is a no-op (the word is already fully extended).
func signExtend(byteNum, word *Word) *Word {
	if byteNum.GtUint64(31) {
		return new(uint256.Int).Set(word)
	}
	return new(uint256.Int).ExtendSign(word, byteNum)
}

// byteAt implements the BYTE opcode: returns the `n`-th byte (0 = most
// significant) of `word`, or zero if n >= 32.
func byteAt(n, word *Word) *Word {
	if n.GtUint64(31) {
		return new(uint256.Int)
	}
	b := word.Bytes32()
	return new(uint256.Int).SetUint64(uint64(b[n.Uint64()]))
}
