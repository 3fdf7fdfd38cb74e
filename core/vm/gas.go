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

import "math"

// Fixed per-step gas costs, named the way the yellow paper and geth's own
// gas table name them.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	GasJumpDest      uint64 = 1
	GasSelfdestruct  uint64 = 5000
	GasCreate        uint64 = 32000
	GasCallValue     uint64 = 9000
	GasNewAccount    uint64 = 25000
	GasLog           uint64 = 375
	GasLogData       uint64 = 8
	GasLogTopic      uint64 = 375
	GasKeccak256     uint64 = 30
	GasKeccak256Word uint64 = 6
	GasBlockhash     uint64 = 20
	GasCodeDeposit   uint64 = 200
	GasDataLoad      uint64 = 3

	GasIstanbulSload      uint64 = 800
	GasSstoreSet          uint64 = 20000
	GasSstoreReset        uint64 = 2900
	GasRefundSstoreClears uint64 = 4800
	GasAccessListAddress  uint64 = 2400
	GasAccessListStorage  uint64 = 1900
	GasColdSload          uint64 = 2100
	GasColdAccountAccess  uint64 = 2600
	GasWarmStorageRead    uint64 = 100
	GasWarmSstoreReset    uint64 = 1900
	GasInitcodeWord       uint64 = 2
	GasCallStipend        uint64 = 2300
)

// GasTracker accounts for gas consumption and refunds within a single call
// frame. gas_limit is fixed at frame creation; used_amount grows with each
// Charge and shrinks only when Return credits unspent gas back; refund_amount can be positive or negative but is clamped to non-negative
// at payout time by the caller (it never changes used_amount directly).
type GasTracker struct {
	gasLimit     uint64
	usedAmount   uint64
	refundAmount int64
}

// NewGasTracker creates a tracker with the given frame gas limit.
func NewGasTracker(gasLimit uint64) *GasTracker {
	return &GasTracker{gasLimit: gasLimit}
}

// Limit returns the frame's total gas allowance.
func (g *GasTracker) Limit() uint64 { return g.gasLimit }

// Used returns the amount of gas consumed so far.
func (g *GasTracker) Used() uint64 { return g.usedAmount }

// Refund returns the accumulated refund counter.
func (g *GasTracker) Refund() int64 { return g.refundAmount }

// Available returns the amount of gas left to spend.
func (g *GasTracker) Available() uint64 { return g.gasLimit - g.usedAmount }

// Charge deducts cost from the available gas. It fails with ErrOutOfGas if
// cost exceeds what remains, or ErrGasUintOverflow if usedAmount+cost would
// wrap a uint64.
func (g *GasTracker) Charge(cost uint64) error {
	if g.usedAmount > math.MaxUint64-cost {
		return ErrGasUintOverflow
	}
	if cost > g.Available() {
		return ErrOutOfGas
	}
	g.usedAmount += cost
	return nil
}

// AddRefund adds delta (which may be negative) to the refund counter. Callers
// are responsible for not letting the counter go negative in ways the spec
// forbids; AddRefund itself only performs the addition.
func (g *GasTracker) AddRefund(delta int64) {
	g.refundAmount += delta
}

// Return credits amount back as unused, the inverse of Charge. The outer
// driver uses this to hand a child frame's unspent forwarded gas back to the
// parent after a CALL/CREATE completes.
func (g *GasTracker) Return(amount uint64) {
	if amount > g.usedAmount {
		amount = g.usedAmount
	}
	g.usedAmount -= amount
}

// SubRefund removes amount from the refund counter, clamping at zero. Used
// by SSTORE's "undo a pending refund" paths (e.g. re-dirtying a slot that
// had already earned a clear refund).
func (g *GasTracker) SubRefund(amount uint64) {
	if int64(amount) > g.refundAmount {
		g.refundAmount = 0
		return
	}
	g.refundAmount -= int64(amount)
}

// CapRefund applies the EIP-3529 cap: the refund actually paid out is at
// most used/divisor (divisor=5 post-London, 2 pre-London).
func (g *GasTracker) CapRefund(divisor uint64) uint64 {
	max := g.usedAmount / divisor
	if g.refundAmount < 0 {
		return 0
	}
	if uint64(g.refundAmount) > max {
		return max
	}
	return uint64(g.refundAmount)
}
