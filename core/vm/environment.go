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
	"github.com/pkg/errors"

	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/params"
)

// AnalysisKind selects whether a freshly loaded contract's bytecode is
// analyzed for jump destinations before execution.
type AnalysisKind uint8

const (
	AnalysisRaw AnalysisKind = iota
	AnalysisAnalyse
)

// defaultContractSizeLimit is EIP-170's 24KB cap.
const defaultContractSizeLimit = 24576

// ConfigEnvironment carries the engine-wide switches that do not change
// per-block or per-transaction: chain identity and a set of feature
// toggles test harnesses use to relax default EVM behavior.
type ConfigEnvironment struct {
	ChainID                  uint64
	PerformAnalysis          AnalysisKind
	LimitContractSize        *int
	MemoryLimit              uint64
	DisableBalanceCheck      bool
	DisableBlockGasLimit     bool
	DisableEIP3607           bool
	DisableGasRefund         bool
	DisableBaseFee           bool
	DisableBeneficiaryReward bool
}

// DefaultConfigEnvironment returns the configuration a production chain
// would run with: bytecode analysis on, EIP-170 size cap enforced, no
// relaxations.
func DefaultConfigEnvironment() ConfigEnvironment {
	limit := defaultContractSizeLimit
	return ConfigEnvironment{
		PerformAnalysis:   AnalysisAnalyse,
		LimitContractSize: &limit,
	}
}

// BlobExcessGasAndPrice carries the EIP-4844 fields needed to price
// BLOBBASEFEE once a block has them.
type BlobExcessGasAndPrice struct {
	BlobGasPrice  uint256.Int
	BlobExcessGas uint256.Int
}

// BlockEnvironment is the subset of block header fields opcodes can read.
type BlockEnvironment struct {
	Number                uint256.Int
	Timestamp             uint256.Int
	GasLimit              uint256.Int
	BaseFee               uint256.Int
	Difficulty            uint256.Int
	Coinbase              common.Address
	Prevrandao            *uint256.Int
	BlobExcessGasAndPrice *BlobExcessGasAndPrice
}

// AddressKind discriminates a transaction's destination: an ordinary call
// target, or the null destination that signals contract creation.
type AddressKind struct {
	isCall bool
	call   common.Address
}

// CallTo builds an AddressKind pointing at an existing account.
func CallTo(addr common.Address) AddressKind { return AddressKind{isCall: true, call: addr} }

// CreateKind builds the AddressKind used for contract-creation transactions.
func CreateKind() AddressKind { return AddressKind{} }

// IsCreate reports whether this is a contract-creation destination.
func (a AddressKind) IsCreate() bool { return !a.isCall }

// Address returns the call target and true, or the zero address and false
// if this AddressKind denotes contract creation.
func (a AddressKind) Address() (common.Address, bool) { return a.call, a.isCall }

// AccessListItem is one entry of an EIP-2930 access list: an address plus
// the storage keys within it to pre-warm.
type AccessListItem struct {
	Address     common.Address
	StorageKeys []common.Hash
}

// TxEnvironment is the subset of transaction fields opcodes can read.
type TxEnvironment struct {
	Caller           common.Address
	GasLimit         uint64
	GasPrice         uint256.Int
	TransactTo       AddressKind
	Value            uint256.Int
	Data             []byte
	Nonce            *uint64
	ChainID          *uint64
	AccessList       []AccessListItem
	GasPriorityFee   *uint256.Int
	BlobHashes       []common.Hash
	MaxFeePerBlobGas *uint256.Int
}

// Environment bundles the three immutable views an interpreter reads: the
// engine configuration, the current block and the current transaction.
type Environment struct {
	Config ConfigEnvironment
	Block  BlockEnvironment
	Tx     TxEnvironment
}

var (
	ErrBlobVersionedHashesNotSupported = errors.New("blob versioned hashes not supported before Cancun")
	ErrMaxFeePerBlobGasNotSupported    = errors.New("max fee per blob gas not supported before Cancun")
	ErrGasPriceExceedsMaxFeePerBlobGas = errors.New("gas price exceeds max fee per blob gas")
	ErrNoBlobHashesWithBlobGasFee      = errors.New("max fee per blob gas set without any blob hashes")
)

// Validate enforces the pre/post-Cancun blob field constraints the spec
// layers on top of Environment construction.
func (e *Environment) Validate(spec params.SpecId) error {
	cancun := params.Enabled(spec, params.CANCUN)
	if !cancun {
		if len(e.Tx.BlobHashes) != 0 {
			return ErrBlobVersionedHashesNotSupported
		}
		if e.Tx.MaxFeePerBlobGas != nil {
			return ErrMaxFeePerBlobGasNotSupported
		}
		return nil
	}
	if e.Tx.MaxFeePerBlobGas != nil {
		if len(e.Tx.BlobHashes) == 0 {
			return ErrNoBlobHashesWithBlobGasFee
		}
		if e.Tx.GasPrice.Gt(e.Tx.MaxFeePerBlobGas) {
			return ErrGasPriceExceedsMaxFeePerBlobGas
		}
	}
	return nil
}
