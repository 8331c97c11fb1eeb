// Package main provides the nftdrop command line tool for inspecting and
// exercising a locally persisted NFT sale contract.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/davinharding/advanced-NFT-contract/pkg/bank"
	"github.com/davinharding/advanced-NFT-contract/pkg/config"
	"github.com/davinharding/advanced-NFT-contract/pkg/contract"
	"github.com/davinharding/advanced-NFT-contract/pkg/devnet"
	"github.com/davinharding/advanced-NFT-contract/pkg/ledger"
	"github.com/davinharding/advanced-NFT-contract/pkg/log"
	"github.com/davinharding/advanced-NFT-contract/pkg/merkle"
	"github.com/davinharding/advanced-NFT-contract/pkg/store"
	"github.com/davinharding/advanced-NFT-contract/pkg/token"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "nftdrop",
		Usage:   "NFT sale contract local development tool",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "nftdrop.json", Usage: "path to the config file"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a config template to the --config path",
				Action: initConfig,
			},
			{
				Name:   "status",
				Usage:  "Show the sale status of the persisted contract",
				Action: showStatus,
			},
			{
				Name:   "accounts",
				Usage:  "List the funded development accounts",
				Action: listAccounts,
			},
			{
				Name:   "verify-proof",
				Usage:  "Check an address against an allowlist file",
				Action: verifyProof,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "allowlist", Required: true, Usage: "file with one address per line"},
					&cli.StringFlag{Name: "address", Required: true, Usage: "address to check"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) *zap.Logger {
	return log.NewConsole(c.Bool("debug"))
}

func initConfig(c *cli.Context) error {
	path := c.String("config")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	cfg := config.Default()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote config template to %s\n", path)
	fmt.Println("Set the owner and dao addresses before use.")
	return nil
}

// buildContract loads the config, reconstructs the contract from the
// persisted state when one exists, and seeds the dev accounts otherwise.
func buildContract(c *cli.Context, logger *zap.Logger) (*contract.Contract, *bank.Bank, *config.Config, error) {
	cfg, err := config.LoadFromFile(c.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	bk := bank.New()
	sale := contract.New(cfg, token.NewRegistry(), ledger.New(), bk, logger)

	s, err := store.Open(cfg.StatePath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer s.Close()

	dump, err := s.LoadState()
	switch {
	case errors.Is(err, store.ErrNoState):
		if _, err := devnet.Seed(bk, cfg); err != nil {
			return nil, nil, nil, err
		}
	case err != nil:
		return nil, nil, nil, err
	default:
		sale.RestoreState(dump)
	}

	return sale, bk, cfg, nil
}

func showStatus(c *cli.Context) error {
	logger := newLogger(c)
	sale, bk, cfg, err := buildContract(c, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Collection:     %s\n", cfg.Name)
	fmt.Printf("Contract:       %s\n", sale.Address().Hex())
	fmt.Printf("Sale status:    %s\n", sale.SaleStatus())
	fmt.Printf("Minted:         %d / %d\n", sale.TotalSupply(), sale.MaxTotalSupply())
	fmt.Printf("Reserved:       %d\n", sale.TotalReserved())
	fmt.Printf("Balance:        %s\n", bk.BalanceOf(sale.Address()).String())

	st := sale.State()
	fmt.Printf("Revealed:       %t\n", st.Revealed)
	fmt.Printf("Refunds open:   %t\n", st.RefundActive)
	fmt.Printf("Transfers:      %t\n", !st.TransfersDisabled)
	return nil
}

func listAccounts(c *cli.Context) error {
	cfg, err := config.LoadFromFile(c.String("config"))
	if err != nil {
		return err
	}

	accounts, err := devnet.GenerateAccounts(cfg.Mnemonic, cfg.DevAccountCount)
	if err != nil {
		return err
	}

	for i, acc := range accounts {
		fmt.Printf("(%d) %s\n", i, acc.Address.Hex())
	}
	return nil
}

func verifyProof(c *cli.Context) error {
	addrs, err := readAllowlist(c.String("allowlist"))
	if err != nil {
		return err
	}

	tree, err := merkle.NewTree(addrs)
	if err != nil {
		return err
	}
	fmt.Printf("Allowlist root: %s\n", tree.Root().Hex())

	addr := common.HexToAddress(c.String("address"))
	proof, err := tree.ProofFor(addr)
	if errors.Is(err, merkle.ErrNotInSet) {
		fmt.Printf("%s is NOT on the allowlist\n", addr.Hex())
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s is on the allowlist\n", addr.Hex())
	for i, h := range proof {
		fmt.Printf("  proof[%d] = %s\n", i, h.Hex())
	}
	return nil
}

func readAllowlist(path string) ([]common.Address, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var addrs []common.Address
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !common.IsHexAddress(line) {
			return nil, fmt.Errorf("invalid address in allowlist: %q", line)
		}
		addrs = append(addrs, common.HexToAddress(line))
	}
	return addrs, scanner.Err()
}
