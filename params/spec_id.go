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

// Package params holds the hardfork ordering and the fixed gas constants
// that depend only on which fork is active, not on any particular chain's
// block schedule.
package params

import "github.com/pkg/errors"

// SpecId is a dense, ordered enum of Ethereum hardforks. Ordering matters:
// Enabled compares the underlying byte value, so forks must stay declared
// in activation order.
type SpecId uint8

const (
	FRONTIER SpecId = iota
	FRONTIER_THAWING
	HOMESTEAD
	DAO_FORK
	TANGERINE
	SPURIOUS_DRAGON
	BYZANTIUM
	CONSTANTINOPLE
	PETERSBURG
	ISTANBUL
	MUIR_GLACIER
	BERLIN
	LONDON
	ARROW_GLACIER
	GRAY_GLACIER
	MERGE
	SHANGHAI
	CANCUN
	PRAGUE

	LATEST = PRAGUE
)

var specIdNames = [...]string{
	"Frontier", "FrontierThawing", "Homestead", "DAOFork", "Tangerine",
	"SpuriousDragon", "Byzantium", "Constantinople", "Petersburg", "Istanbul",
	"MuirGlacier", "Berlin", "London", "ArrowGlacier", "GrayGlacier", "Merge",
	"Shanghai", "Cancun", "Prague",
}

func (s SpecId) String() string {
	if int(s) < len(specIdNames) {
		return specIdNames[s]
	}
	return "Unknown"
}

// Enabled reports whether query is active given the chain is running at
// current, i.e. current >= query.
func Enabled(current, query SpecId) bool {
	return current >= query
}

// ErrInvalidEnumTag is returned by ToSpecId for a byte with no corresponding fork.
var ErrInvalidEnumTag = errors.New("invalid spec id enum tag")

// ToSpecId parses a raw byte into a SpecId, failing for values past LATEST.
func ToSpecId(b uint8) (SpecId, error) {
	if b > uint8(LATEST) {
		return 0, ErrInvalidEnumTag
	}
	return SpecId(b), nil
}

// OptimismSpecId extends the Ethereum fork sequence with OP-stack-specific
// forks. The core engine treats it as orthogonal metadata: it never gates
// instruction availability on it directly, only chains that embed the core
// consult it.
type OptimismSpecId uint8

const (
	BEDROCK OptimismSpecId = iota
	REGOLITH
	CANYON
	ECOTONE
)

func (s OptimismSpecId) String() string {
	switch s {
	case BEDROCK:
		return "Bedrock"
	case REGOLITH:
		return "Regolith"
	case CANYON:
		return "Canyon"
	case ECOTONE:
		return "Ecotone"
	default:
		return "Unknown"
	}
}
