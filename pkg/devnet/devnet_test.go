package devnet

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davinharding/advanced-NFT-contract/pkg/bank"
	"github.com/davinharding/advanced-NFT-contract/pkg/config"
)

func TestGenerateAccounts(t *testing.T) {
	mnemonic := "test test test test test test test test test test test junk"

	accounts, err := GenerateAccounts(mnemonic, 10)

	require.NoError(t, err)
	assert.Len(t, accounts, 10)

	// All accounts should have valid addresses
	for _, acc := range accounts {
		assert.NotEqual(t, common.Address{}, acc.Address)
		assert.NotNil(t, acc.PrivateKey)
	}
}

func TestGenerateAccounts_Deterministic(t *testing.T) {
	mnemonic := "test test test test test test test test test test test junk"

	accounts1, err := GenerateAccounts(mnemonic, 10)
	require.NoError(t, err)

	accounts2, err := GenerateAccounts(mnemonic, 10)
	require.NoError(t, err)

	// Same mnemonic should produce same accounts
	for i := range accounts1 {
		assert.Equal(t, accounts1[i].Address, accounts2[i].Address)
	}
}

func TestGenerateAccounts_DifferentMnemonics(t *testing.T) {
	mnemonic1 := "test test test test test test test test test test test junk"
	mnemonic2 := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	accounts1, err := GenerateAccounts(mnemonic1, 5)
	require.NoError(t, err)

	accounts2, err := GenerateAccounts(mnemonic2, 5)
	require.NoError(t, err)

	// Different mnemonics should produce different accounts
	for i := range accounts1 {
		assert.NotEqual(t, accounts1[i].Address, accounts2[i].Address)
	}
}

func TestGenerateAccounts_InvalidMnemonic(t *testing.T) {
	_, err := GenerateAccounts("invalid mnemonic words", 10)
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	cfg := config.Default()
	cfg.DevAccountCount = 3
	cfg.DevBalance = big.NewInt(1000)

	bk := bank.New()
	accounts, err := Seed(bk, cfg)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	for _, acc := range accounts {
		assert.Equal(t, big.NewInt(1000), bk.BalanceOf(acc.Address))
	}
}

func TestSeed_InvalidMnemonic(t *testing.T) {
	cfg := config.Default()
	cfg.Mnemonic = "not a mnemonic"

	_, err := Seed(bank.New(), cfg)
	assert.Error(t, err)
}
