package store

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davinharding/advanced-NFT-contract/pkg/bank"
	"github.com/davinharding/advanced-NFT-contract/pkg/config"
	"github.com/davinharding/advanced-NFT-contract/pkg/contract"
	"github.com/davinharding/advanced-NFT-contract/pkg/ledger"
	"github.com/davinharding/advanced-NFT-contract/pkg/token"
)

func openTestStore(t *testing.T) *Store {
	s, err := Open(filepath.Join(t.TempDir(), "drop", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func buildContract(t *testing.T) (*contract.Contract, *bank.Bank) {
	cfg := config.Default()
	cfg.Name = "Store Test"
	cfg.MaxTotalSupply = 5
	cfg.PublicPrice = big.NewInt(100)
	cfg.Owner = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	cfg.DAO = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, cfg.Validate())

	bk := bank.New()
	c := contract.New(cfg, token.NewRegistry(), ledger.New(), bk, nil)
	return c, bk
}

func TestLoadState_Empty(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadState()
	assert.ErrorIs(t, err, ErrNoState)
}

func TestSaveLoadState(t *testing.T) {
	s := openTestStore(t)
	c, bk := buildContract(t)

	buyer := common.HexToAddress("0x1111111111111111111111111111111111111111")
	ownerCtx := contract.TxContext{Origin: c.Owner(), Caller: c.Owner()}
	require.NoError(t, bk.Deposit(buyer, big.NewInt(500)))
	require.NoError(t, c.SetPublicActive(ownerCtx, true))
	require.NoError(t, c.Shuffle(ownerCtx, big.NewInt(42)))

	ids, err := c.PublicMint(contract.TxContext{Origin: buyer, Caller: buyer, Value: big.NewInt(100)}, 1)
	require.NoError(t, err)

	require.NoError(t, s.SaveState(c.ExportState()))

	loaded, err := s.LoadState()
	require.NoError(t, err)

	c2, _ := buildContract(t)
	c2.RestoreState(loaded)

	assert.Equal(t, c.State(), c2.State())
	assert.Equal(t, uint64(1), c2.TotalSupply())

	uri1, err := c.TokenURI(ids[0])
	require.NoError(t, err)
	uri2, err := c2.TokenURI(ids[0])
	require.NoError(t, err)
	assert.Equal(t, uri1, uri2)
}

func TestSaveState_Replaces(t *testing.T) {
	s := openTestStore(t)
	c, _ := buildContract(t)

	require.NoError(t, s.SaveState(c.ExportState()))

	ownerCtx := contract.TxContext{Origin: c.Owner(), Caller: c.Owner()}
	require.NoError(t, c.SetRevealed(ownerCtx, true))
	require.NoError(t, s.SaveState(c.ExportState()))

	loaded, err := s.LoadState()
	require.NoError(t, err)
	assert.True(t, loaded.Sale.Revealed)
}

func TestSaveState_Nil(t *testing.T) {
	s := openTestStore(t)

	assert.Error(t, s.SaveState(nil))
}
