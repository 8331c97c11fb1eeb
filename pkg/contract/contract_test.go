package contract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/davinharding/advanced-NFT-contract/pkg/bank"
	"github.com/davinharding/advanced-NFT-contract/pkg/config"
	"github.com/davinharding/advanced-NFT-contract/pkg/ledger"
	"github.com/davinharding/advanced-NFT-contract/pkg/merkle"
	"github.com/davinharding/advanced-NFT-contract/pkg/token"
)

var (
	owner = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	dao   = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	userX = common.HexToAddress("0x1111111111111111111111111111111111111111")
	userY = common.HexToAddress("0x2222222222222222222222222222222222222222")
	userZ = common.HexToAddress("0x3333333333333333333333333333333333333333")
	userW = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

// testEnv holds the contract and its collaborators for testing.
type testEnv struct {
	c   *Contract
	reg *token.Registry
	led *ledger.Ledger
	bk  *bank.Bank
	cfg *config.Config
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Name = "Test Drop"
	cfg.MaxTotalSupply = 10
	cfg.AllowlistPrice = big.NewInt(80)
	cfg.PublicPrice = big.NewInt(100)
	cfg.AllowlistCap = 2
	cfg.PerTxPublicCap = 1
	cfg.AdminFeePercent = 10
	cfg.Owner = owner
	cfg.DAO = dao
	cfg.BaseURI = "ipfs://revealed/"
	cfg.PlaceholderURI = "ipfs://hidden"
	return cfg
}

func setup(t *testing.T, mutate func(*config.Config)) *testEnv {
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	reg := token.NewRegistry()
	led := ledger.New()
	bk := bank.New()
	c := New(cfg, reg, led, bk, nil)

	// Fund the test wallets
	for _, addr := range []common.Address{userX, userY, userZ, userW} {
		require.NoError(t, bk.Deposit(addr, big.NewInt(100000)))
	}

	return &testEnv{c: c, reg: reg, led: led, bk: bk, cfg: cfg}
}

// txFrom builds a direct (non-contract-mediated) call context.
func txFrom(addr common.Address, value int64) TxContext {
	return TxContext{Origin: addr, Caller: addr, Value: big.NewInt(value)}
}

func ownerTx() TxContext {
	return TxContext{Origin: owner, Caller: owner}
}

// allowlistFor publishes an allowlist of the given addresses and returns
// proofs keyed by address.
func allowlistFor(t *testing.T, env *testEnv, addrs ...common.Address) map[common.Address][]common.Hash {
	tree, err := merkle.NewTree(addrs)
	require.NoError(t, err)
	require.NoError(t, env.c.SetAllowlistRoot(ownerTx(), tree.Root()))

	proofs := make(map[common.Address][]common.Hash, len(addrs))
	for _, addr := range addrs {
		proof, err := tree.ProofFor(addr)
		require.NoError(t, err)
		proofs[addr] = proof
	}
	return proofs
}

// publicMintOne opens the public sale just long enough to mint one token.
func publicMintOne(t *testing.T, env *testEnv, to common.Address) uint64 {
	st := env.c.State()
	if !st.PublicActive {
		require.NoError(t, env.c.SetPublicActive(ownerTx(), true))
	}
	ids, err := env.c.PublicMint(txFrom(to, 100), 1)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	if !st.PublicActive {
		require.NoError(t, env.c.SetPublicActive(ownerTx(), false))
	}
	return ids[0]
}
