// Package benchmark provides performance benchmarks for the sale contract.
package benchmark

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/davinharding/advanced-NFT-contract/pkg/bank"
	"github.com/davinharding/advanced-NFT-contract/pkg/config"
	"github.com/davinharding/advanced-NFT-contract/pkg/contract"
	"github.com/davinharding/advanced-NFT-contract/pkg/ledger"
	"github.com/davinharding/advanced-NFT-contract/pkg/merkle"
	"github.com/davinharding/advanced-NFT-contract/pkg/shuffle"
	"github.com/davinharding/advanced-NFT-contract/pkg/token"
)

var benchOwner = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

func setupBenchSale(b *testing.B, supply uint64) (*contract.Contract, *bank.Bank) {
	cfg := config.Default()
	cfg.Name = "Bench Drop"
	cfg.MaxTotalSupply = supply
	cfg.AllowlistPrice = big.NewInt(60)
	cfg.PublicPrice = big.NewInt(100)
	cfg.Owner = benchOwner
	cfg.DAO = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	if err := cfg.Validate(); err != nil {
		b.Fatal(err)
	}

	bk := bank.New()
	sale := contract.New(cfg, token.NewRegistry(), ledger.New(), bk, nil)

	ownerCtx := contract.TxContext{Origin: benchOwner, Caller: benchOwner}
	if err := sale.SetPublicActive(ownerCtx, true); err != nil {
		b.Fatal(err)
	}

	return sale, bk
}

// benchAddr generates a distinct wallet per iteration so the one-per-wallet
// policy does not reject the mint.
func benchAddr(i int) common.Address {
	return common.BytesToAddress([]byte(fmt.Sprintf("bench-wallet-%d", i)))
}

func BenchmarkPublicMint(b *testing.B) {
	sale, bk := setupBenchSale(b, uint64(b.N)+1)

	for i := 0; i < b.N; i++ {
		if err := bk.Deposit(benchAddr(i), big.NewInt(100)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		addr := benchAddr(i)
		ctx := contract.TxContext{Origin: addr, Caller: addr, Value: big.NewInt(100)}
		if _, err := sale.PublicMint(ctx, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkShuffle(b *testing.B) {
	perm := shuffle.New(8888)
	seed := big.NewInt(123456789)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		perm.Run(seed)
	}
}

func BenchmarkMerkleProofVerify(b *testing.B) {
	addrs := make([]common.Address, 1024)
	for i := range addrs {
		addrs[i] = benchAddr(i)
	}
	tree, err := merkle.NewTree(addrs)
	if err != nil {
		b.Fatal(err)
	}
	proof, err := tree.ProofFor(addrs[0])
	if err != nil {
		b.Fatal(err)
	}
	root := tree.Root()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !merkle.VerifyProof(proof, addrs[0], root) {
			b.Fatal("proof rejected")
		}
	}
}

func BenchmarkTokenURI(b *testing.B) {
	sale, bk := setupBenchSale(b, 16)
	addr := benchAddr(0)
	if err := bk.Deposit(addr, big.NewInt(100)); err != nil {
		b.Fatal(err)
	}

	ctx := contract.TxContext{Origin: addr, Caller: addr, Value: big.NewInt(100)}
	ids, err := sale.PublicMint(ctx, 1)
	if err != nil {
		b.Fatal(err)
	}

	ownerCtx := contract.TxContext{Origin: benchOwner, Caller: benchOwner}
	if err := sale.Shuffle(ownerCtx, big.NewInt(42)); err != nil {
		b.Fatal(err)
	}
	if err := sale.SetRevealed(ownerCtx, true); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sale.TokenURI(ids[0]); err != nil {
			b.Fatal(err)
		}
	}
}
