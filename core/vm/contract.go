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
	"github.com/holiman/uint256"

	"github.com/ethereum/go-evmcore/common"
)

// Contract is the running code and addressing context of a single call
// frame: who is executing, on whose behalf, with how much value in play,
// and against which bytecode.
type Contract struct {
	CallerAddress common.Address
	Address       common.Address
	Value         uint256.Int
	Input         []byte

	Code     *Bytecode
	CodeHash common.Hash
}

// NewContract builds a frame's addressing context. code must already be
// analyzed if jump validation will be needed; the interpreter's Init does
// that analysis when the caller passes raw bytecode.
func NewContract(caller, address common.Address, value uint256.Int, code *Bytecode, codeHash common.Hash, input []byte) *Contract {
	return &Contract{
		CallerAddress: caller,
		Address:       address,
		Value:         value,
		Input:         input,
		Code:          code,
		CodeHash:      codeHash,
	}
}

// IsValidJump composes Bytecode.IsValidJump for the contract currently executing.
func (c *Contract) IsValidJump(pc uint64) bool {
	return c.Code.IsValidJump(pc)
}

// GetOp returns the opcode at pc, or STOP if pc runs past the code
// (guaranteed reachable only through the trailing STOP padding on analyzed
// bytecode; unanalyzed bytecode must not be executed past its own length).
func (c *Contract) GetOp(pc uint64) OpCode {
	if pc < uint64(len(c.Code.Code())) {
		return OpCode(c.Code.Code()[pc])
	}
	return STOP
}
