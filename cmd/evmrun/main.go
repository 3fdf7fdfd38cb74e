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

// Command evmrun is a small companion harness: given bytecode and calldata
// on the command line, it runs one top-level call through the engine and
// prints the terminal status, return data and gas used. It has no
// JSON-RPC, genesis, or tracing surface - those sit above the core this
// repository implements.
package main

import (
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/ethereum/go-evmcore/common"
	"github.com/ethereum/go-evmcore/core/vm"
	"github.com/ethereum/go-evmcore/internal/evmtest"
	"github.com/ethereum/go-evmcore/log"
	"github.com/ethereum/go-evmcore/params"
)

var (
	codeFlag = &cli.StringFlag{
		Name:     "code",
		Usage:    "contract bytecode, hex encoded",
		Required: true,
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "calldata, hex encoded",
		Value: "",
	}
	gasFlag = &cli.Uint64Flag{
		Name:  "gas",
		Usage: "gas limit for the call",
		Value: 30_000_000,
	}
	specFlag = &cli.StringFlag{
		Name:  "spec",
		Usage: "active hardfork (e.g. CANCUN, LONDON, BERLIN)",
		Value: "LATEST",
	}
	staticFlag = &cli.BoolFlag{
		Name:  "static",
		Usage: "run as a static (read-only) call",
	}
)

func main() {
	app := &cli.App{
		Name:   "evmrun",
		Usage:  "run one top-level EVM call against a fresh in-memory state",
		Flags:  []cli.Flag{codeFlag, inputFlag, gasFlag, specFlag, staticFlag},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Crit("evmrun failed", "err", err)
	}
}

func run(c *cli.Context) error {
	code, err := common.FromHex(c.String(codeFlag.Name))
	if err != nil {
		return fmt.Errorf("decoding --code: %w", err)
	}
	input, err := common.FromHex(c.String(inputFlag.Name))
	if err != nil {
		return fmt.Errorf("decoding --input: %w", err)
	}
	spec, err := parseSpec(c.String(specFlag.Name))
	if err != nil {
		return err
	}

	caller := common.Address{}
	target := common.BytesToAddress([]byte{0x42})

	env := evmtest.DefaultEnvironment(caller, target, uint256.Int{}, input)
	chain := evmtest.NewChain(env, spec)
	chain.DeployCode(target, code)

	bytecode := vm.NewRawBytecode(code).Analyze()
	contract := vm.NewContract(caller, target, uint256.Int{}, bytecode, common.Hash{}, input)
	out := chain.Machine.Run(contract, c.Uint64(gasFlag.Name), c.Bool(staticFlag.Name))

	fmt.Printf("status:   %s\n", out.Status)
	fmt.Printf("output:   0x%x\n", out.Output)
	fmt.Printf("gas used: %d\n", out.GasUsed)
	fmt.Printf("refund:   %d\n", out.Refund)
	return nil
}

func parseSpec(name string) (params.SpecId, error) {
	switch name {
	case "FRONTIER":
		return params.FRONTIER, nil
	case "HOMESTEAD":
		return params.HOMESTEAD, nil
	case "TANGERINE":
		return params.TANGERINE, nil
	case "SPURIOUS_DRAGON":
		return params.SPURIOUS_DRAGON, nil
	case "BYZANTIUM":
		return params.BYZANTIUM, nil
	case "CONSTANTINOPLE":
		return params.CONSTANTINOPLE, nil
	case "ISTANBUL":
		return params.ISTANBUL, nil
	case "BERLIN":
		return params.BERLIN, nil
	case "LONDON":
		return params.LONDON, nil
	case "MERGE":
		return params.MERGE, nil
	case "SHANGHAI":
		return params.SHANGHAI, nil
	case "CANCUN":
		return params.CANCUN, nil
	case "PRAGUE":
		return params.PRAGUE, nil
	case "LATEST":
		return params.LATEST, nil
	default:
		return 0, fmt.Errorf("unknown spec id %q", name)
	}
}
