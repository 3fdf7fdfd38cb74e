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

package state

import (
	"encoding/binary"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/cockroachdb/pebble"
	"github.com/golang/snappy"
	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/core/vm"
	"github.com/ethereum/go-evmcore/log"
)

// key prefixes, mirroring the convention of giving every logical table its
// own single-byte namespace within one flat pebble keyspace.
const (
	accountPrefix = 'a'
	codePrefix    = 'c'
	storagePrefix = 's'
	headerPrefix  = 'h'
)

// DiskDatabase is a Database backed by a pebble key-value store, fronted by
// a fastcache read cache for the hot path (repeated SLOADs of the same
// slot within a long-running interpreter loop). Bytecode is snappy
// compressed at rest since contract code compresses well and is read far
// more often than written.
type DiskDatabase struct {
	db    *pebble.DB
	cache *fastcache.Cache
	log   log.Logger
}

// OpenDiskDatabase opens (creating if absent) a pebble store at dir, with an
// in-memory read cache sized cacheBytes.
func OpenDiskDatabase(dir string, cacheBytes int) (*DiskDatabase, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &DiskDatabase{
		db:    db,
		cache: fastcache.New(cacheBytes),
		log:   log.New("component", "diskdb", "dir", dir),
	}, nil
}

func (d *DiskDatabase) Close() error { return d.db.Close() }

func accountKey(addr common.Address) []byte {
	k := make([]byte, 0, 1+common.AddressLength)
	k = append(k, accountPrefix)
	return append(k, addr.Bytes()...)
}

func codeKey(hash common.Hash) []byte {
	k := make([]byte, 0, 1+common.HashLength)
	k = append(k, codePrefix)
	return append(k, hash.Bytes()...)
}

func storageKey(addr common.Address, key common.Hash) []byte {
	k := make([]byte, 0, 1+common.AddressLength+common.HashLength)
	k = append(k, storagePrefix)
	k = append(k, addr.Bytes()...)
	return append(k, key.Bytes()...)
}

func headerKey(number uint64) []byte {
	k := make([]byte, 9)
	k[0] = headerPrefix
	binary.BigEndian.PutUint64(k[1:], number)
	return k
}

// encodeAccountInfo serialises balance/nonce/codeHash as a fixed 72-byte
// record: 32 bytes balance, 8 bytes nonce, 32 bytes code hash.
func encodeAccountInfo(info AccountInfo) []byte {
	buf := make([]byte, 72)
	b := info.Balance.Bytes32()
	copy(buf[0:32], b[:])
	binary.BigEndian.PutUint64(buf[32:40], info.Nonce)
	copy(buf[40:72], info.CodeHash.Bytes())
	return buf
}

func decodeAccountInfo(buf []byte) AccountInfo {
	var info AccountInfo
	info.Balance.SetBytes(buf[0:32])
	info.Nonce = binary.BigEndian.Uint64(buf[32:40])
	info.CodeHash = common.BytesToHash(buf[40:72])
	return info
}

func (d *DiskDatabase) Basic(addr common.Address) (AccountInfo, bool) {
	k := accountKey(addr)
	if cached, ok := d.cache.HasGet(nil, k); ok {
		return decodeAccountInfo(cached), true
	}
	val, closer, err := d.db.Get(k)
	if err != nil {
		d.log.Debug("account cache miss, not found on disk", "addr", addr, "err", err)
		return AccountInfo{}, false
	}
	defer closer.Close()
	info := decodeAccountInfo(val)
	d.cache.Set(k, val)
	return info, true
}

func (d *DiskDatabase) CodeByHash(hash common.Hash) (*vm.Bytecode, bool) {
	k := codeKey(hash)
	val, closer, err := d.db.Get(k)
	if err != nil {
		return nil, false
	}
	defer closer.Close()
	raw, err := snappy.Decode(nil, val)
	if err != nil {
		d.log.Error("corrupt code record, snappy decode failed", "hash", hash, "err", err)
		return nil, false
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return vm.NewRawBytecode(cp).Analyze(), true
}

func (d *DiskDatabase) Storage(addr common.Address, key common.Hash) uint256.Int {
	k := storageKey(addr, key)
	if cached, ok := d.cache.HasGet(nil, k); ok {
		var v uint256.Int
		v.SetBytes(cached)
		return v
	}
	val, closer, err := d.db.Get(k)
	if err != nil {
		return uint256.Int{}
	}
	defer closer.Close()
	var v uint256.Int
	v.SetBytes(val)
	d.cache.Set(k, val)
	return v
}

func (d *DiskDatabase) BlockHash(number uint64) (common.Hash, bool) {
	val, closer, err := d.db.Get(headerKey(number))
	if err != nil {
		return common.Hash{}, false
	}
	defer closer.Close()
	return common.BytesToHash(val), true
}

// PutAccount writes addr's account record, for chain-sync callers that
// populate the database outside of interpreter execution.
func (d *DiskDatabase) PutAccount(addr common.Address, info AccountInfo) error {
	k := accountKey(addr)
	v := encodeAccountInfo(info)
	d.cache.Set(k, v)
	return d.db.Set(k, v, pebble.Sync)
}

// PutCode writes code under its Keccak-256 hash, snappy-compressed.
func (d *DiskDatabase) PutCode(hash common.Hash, code []byte) error {
	return d.db.Set(codeKey(hash), snappy.Encode(nil, code), pebble.Sync)
}

// PutStorage writes a single persisted storage slot.
func (d *DiskDatabase) PutStorage(addr common.Address, key common.Hash, value uint256.Int) error {
	k := storageKey(addr, key)
	v := value.Bytes()
	d.cache.Set(k, v)
	return d.db.Set(k, v, pebble.Sync)
}

// PutBlockHash records a historical block's hash for future BLOCKHASH queries.
func (d *DiskDatabase) PutBlockHash(number uint64, hash common.Hash) error {
	return d.db.Set(headerKey(number), hash.Bytes(), pebble.Sync)
}
