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

	"github.com/ethereum/go-evmcore/common"
)

func mustHex(s string) []byte {
	b, err := common.FromHex(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestWordHashRoundTrip(t *testing.T) {
	h := common.HexToHash("0x0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	w := HashToWord(h)
	assert.Equal(t, h, WordToHash(w))
}

func TestWordToAddressTruncatesLow20Bytes(t *testing.T) {
	addr := common.BytesToAddress(mustHex("0xaa0102030405060708090a0b0c0d0e0f10111213"))
	w := AddressToWord(addr)
	// garbage in the high 12 bytes must not survive the truncation.
	w.Or(w, new(uint256.Int).Lsh(WordFromUint64(0xdeadbeef), 160))
	assert.Equal(t, addr, WordToAddress(w))
}

func TestAddressToWordRoundTrip(t *testing.T) {
	addr := common.BytesToAddress([]byte{0xde, 0xad, 0xbe, 0xef})
	w := AddressToWord(addr)
	assert.Equal(t, addr, WordToAddress(w))
}

func TestSignExtendNoopPastByte31(t *testing.T) {
	word := WordFromUint64(0xff)
	got := signExtend(WordFromUint64(31), word)
	assert.True(t, got.Eq(word))

	got = signExtend(WordFromUint64(99), word)
	assert.True(t, got.Eq(word))
}

func TestSignExtendNegativeByte(t *testing.T) {
	// byte 0 = 0xff (sign bit set) extends to all-ones above it.
	word := WordFromUint64(0xff)
	got := signExtend(WordFromUint64(0), word)
	assert.True(t, got.Eq(new(uint256.Int).Not(new(uint256.Int))), "expected -1 (all bits set)")
}

func TestSignExtendPositiveByte(t *testing.T) {
	// byte 0 = 0x7f (sign bit clear) leaves everything above it zero.
	word := WordFromUint64(0x7f)
	got := signExtend(WordFromUint64(0), word)
	assert.True(t, got.Eq(WordFromUint64(0x7f)))
}

func TestByteAtBoundaries(t *testing.T) {
	word := new(uint256.Int).SetBytes(mustHex("0x00112233445566778899aabbccddeeffff00112233445566778899aabbccddee"))

	// n=0 is the most significant byte.
	assert.True(t, byteAt(WordFromUint64(0), word).Eq(WordFromUint64(0x00)))
	assert.True(t, byteAt(WordFromUint64(1), word).Eq(WordFromUint64(0x11)))
	// n=31 is the least significant byte.
	assert.True(t, byteAt(WordFromUint64(31), word).Eq(WordFromUint64(0xee)))
	// out of range is zero.
	assert.True(t, byteAt(WordFromUint64(32), word).IsZero())
	assert.True(t, byteAt(WordFromUint64(1000), word).IsZero())
}

func TestNewWordIsZero(t *testing.T) {
	assert.True(t, NewWord().IsZero())
}
