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

// jumpdestTailPadding is the number of trailing STOP sentinels appended to
// analyzed bytecode. 32 covers the widest possible PUSH32 immediate reading
// past the real end of the code, plus one for the STOP itself landing on a
// well-defined byte rather than running off the slice.
const jumpdestTailPadding = 33

// Bytecode is a contract's code, either in its raw wire form or already
// analyzed for jump-destination validity. Analysis is a pure function of the
// raw bytes, so the same Bytecode value can be shared read-only across every
// frame executing the same contract.
type Bytecode struct {
	code           []byte
	originalLength int
	jumpTable      bitvec
	analyzed       bool
}

// NewRawBytecode wraps code without analyzing it.
func NewRawBytecode(code []byte) *Bytecode {
	return &Bytecode{code: code, originalLength: len(code)}
}

// IsAnalyzed reports whether jump-destination analysis has run.
func (b *Bytecode) IsAnalyzed() bool { return b.analyzed }

// OriginalLength returns the length of the code before any STOP padding was
// appended, i.e. the length CODESIZE/EXTCODESIZE must report.
func (b *Bytecode) OriginalLength() int { return b.originalLength }

// Code returns the (possibly padded) instruction bytes. Callers must not
// mutate the result.
func (b *Bytecode) Code() []byte { return b.code }

// Analyze computes jump-destination analysis if it has not run yet,
// returning an analyzed Bytecode. Re-analyzing an already-analyzed value is
// a no-op that returns the receiver unchanged, so callers can call it
// unconditionally.
func (b *Bytecode) Analyze() *Bytecode {
	if b.analyzed {
		return b
	}
	padded := make([]byte, len(b.code)+jumpdestTailPadding)
	copy(padded, b.code)
	return &Bytecode{
		code:           padded,
		originalLength: len(b.code),
		jumpTable:      codeBitmap(b.code),
		analyzed:       true,
	}
}

// IsValidJump reports whether pc is a JUMPDEST byte that does not fall
// inside a PUSH immediate. Unanalyzed bytecode has no jump table and
// rejects every target.
func (b *Bytecode) IsValidJump(pc uint64) bool {
	if !b.analyzed || pc >= uint64(len(b.jumpTable)*8) {
		return false
	}
	return b.jumpTable.codeSegment(pc)
}

// bitvec is a bit-per-code-position vector: 1 means "this byte is a JUMPDEST
// opcode, not part of a PUSH immediate". codeBitmap sets bits only at such
// positions, so a set bit alone marks a valid jump destination.
type bitvec []byte

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

func (bits bitvec) codeSegment(pos uint64) bool {
	return (bits[pos/8] & (1 << (pos % 8))) != 0
}

// codeBitmap walks code once, marking every JUMPDEST byte that is not
// embedded in a PUSH immediate.
func codeBitmap(code []byte) bitvec {
	bits := make(bitvec, len(code)/8+1+4)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			bits.set(pc)
			pc++
			continue
		}
		if op.IsPush() {
			pc += uint64(op.PushBytes()) + 1
			continue
		}
		pc++
	}
	return bits
}
