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

// Package common holds the opaque identifier types shared by every layer of
// the engine: addresses, hashes and hex helpers. It deliberately carries none
// of the RLP/ABI/trie machinery of a full client - those are external
// collaborators, not part of the core.
package common

import (
	"encoding/hex"
	"fmt"
)

const (
	// HashLength is the expected length of a Keccak-256 hash.
	HashLength = 32
	// AddressLength is the expected length of an Ethereum account address.
	AddressLength = 20
)

// Hash is a 32 byte opaque identifier, normally the output of Keccak-256.
type Hash [HashLength]byte

// BytesToHash sets b to hash. If b is larger than len(h), b is cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// SetBytes sets the hash to the value of b, cropping from the left if b is too long.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

func (h Hash) Bytes() []byte  { return h[:] }
func (h Hash) String() string { return "0x" + hex.EncodeToString(h[:]) }
func (h Hash) IsZero() bool   { return h == Hash{} }

// HexToHash parses a "0x"-prefixed hex string into a Hash, panicking on
// malformed input. It exists for initialising package-level well-known
// constants where a parse failure is a programming error, not user input.
func HexToHash(s string) Hash {
	b, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return BytesToHash(b)
}

// Address is a 20 byte opaque identifier of an Ethereum account.
type Address [AddressLength]byte

// BytesToAddress sets a to value. If value is larger than len(a), value is cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

func (a Address) Bytes() []byte  { return a[:] }
func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }
func (a Address) IsZero() bool   { return a == Address{} }

// Hash hashes the 20 bytes of the address into the low bits of a Hash; useful
// as a map key helper when an address must be combined with other fields.
func (a Address) Hash() Hash {
	var h Hash
	copy(h[HashLength-AddressLength:], a[:])
	return h
}

// FromHex decodes a "0x"-prefixed (or bare) hex string into bytes, matching
// the lenient parsing rules used throughout the engine's test fixtures.
func FromHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string: %w", err)
	}
	return b, nil
}
