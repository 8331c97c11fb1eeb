// Package devnet provides deterministic development accounts for exercising
// the sale contract locally.
package devnet

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"

	"github.com/davinharding/advanced-NFT-contract/pkg/bank"
	"github.com/davinharding/advanced-NFT-contract/pkg/config"
)

// Account represents a development account with its private key.
type Account struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

// GenerateAccounts generates deterministic accounts from a mnemonic.
func GenerateAccounts(mnemonic string, count int) ([]*Account, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, "")
	accounts := make([]*Account, count)

	for i := 0; i < count; i++ {
		key, err := deriveKey(seed, uint32(i))
		if err != nil {
			return nil, fmt.Errorf("failed to derive key %d: %w", i, err)
		}

		accounts[i] = &Account{
			Address:    crypto.PubkeyToAddress(key.PublicKey),
			PrivateKey: key,
		}
	}

	return accounts, nil
}

// deriveKey derives a private key from seed at the given index.
// Uses simplified derivation for testing purposes.
func deriveKey(seed []byte, index uint32) (*ecdsa.PrivateKey, error) {
	// Create a unique seed for each index by hashing seed + index
	indexBytes := make([]byte, 4)
	indexBytes[0] = byte(index >> 24)
	indexBytes[1] = byte(index >> 16)
	indexBytes[2] = byte(index >> 8)
	indexBytes[3] = byte(index)

	combined := append(seed, indexBytes...)
	hash := crypto.Keccak256(combined)

	return crypto.ToECDSA(hash)
}

// Seed derives the configured development accounts and funds each one in
// the bank with the configured development balance.
func Seed(bk *bank.Bank, cfg *config.Config) ([]*Account, error) {
	accounts, err := GenerateAccounts(cfg.Mnemonic, cfg.DevAccountCount)
	if err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if err := bk.Deposit(acc.Address, cfg.DevBalance); err != nil {
			return nil, fmt.Errorf("failed to fund account %s: %w", acc.Address.Hex(), err)
		}
	}

	return accounts, nil
}
