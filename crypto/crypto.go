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

// Package crypto provides the Keccak-256 hashing and address-derivation
// helpers the interpreter needs for KECCAK256, CREATE and CREATE2.
package crypto

import (
	"hash"

	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/common"
)

// KeccakState extends hash.Hash with Read, letting callers pull a digest
// without an intermediate Sum allocation - the shape sha3.state already
// implements.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// Keccak256 returns the Keccak-256 digest of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	d := NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash is Keccak256 with its result wrapped as a common.Hash.
func Keccak256Hash(data ...[]byte) common.Hash {
	d := NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	var h common.Hash
	d.Read(h[:])
	return h
}

// CreateAddress derives the address CREATE assigns: the low 20 bytes of
// Keccak-256(rlp(caller, nonce)).
func CreateAddress(caller common.Address, nonce uint64) common.Address {
	data := rlpEncodeCreate(caller, nonce)
	return common.BytesToAddress(Keccak256(data))
}

// CreateAddress2 derives the address CREATE2 assigns: the low 20 bytes of
// Keccak-256(0xff ++ caller ++ salt ++ Keccak-256(initCode)).
func CreateAddress2(caller common.Address, salt uint256.Int, initCodeHash []byte) common.Address {
	saltBytes := salt.Bytes32()
	buf := make([]byte, 0, 1+common.AddressLength+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, caller.Bytes()...)
	buf = append(buf, saltBytes[:]...)
	buf = append(buf, initCodeHash...)
	return common.BytesToAddress(Keccak256(buf))
}

// rlpEncodeCreate builds the two-element RLP list [caller, nonce] that
// CREATE hashes. It is hand-rolled rather than pulled from a general RLP
// package since this is the only RLP the engine ever needs to produce.
func rlpEncodeCreate(caller common.Address, nonce uint64) []byte {
	nonceBytes := rlpUint64(nonce)
	addrItem := rlpBytes(caller.Bytes())
	nonceItem := nonceBytes
	body := append(append([]byte{}, addrItem...), nonceItem...)
	return append(rlpListHeader(len(body)), body...)
}

func rlpBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	return append(rlpStringHeader(len(b)), b...)
}

func rlpStringHeader(size int) []byte {
	if size < 56 {
		return []byte{byte(0x80 + size)}
	}
	lenBytes := minimalBigEndian(uint64(size))
	return append([]byte{byte(0xb7 + len(lenBytes))}, lenBytes...)
}

func rlpListHeader(size int) []byte {
	if size < 56 {
		return []byte{byte(0xc0 + size)}
	}
	lenBytes := minimalBigEndian(uint64(size))
	return append([]byte{byte(0xf7 + len(lenBytes))}, lenBytes...)
}

func rlpUint64(v uint64) []byte {
	if v == 0 {
		return []byte{0x80}
	}
	b := minimalBigEndian(v)
	return rlpBytes(b)
}

func minimalBigEndian(v uint64) []byte {
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}
