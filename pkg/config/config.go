// Package config provides configuration management for the NFT sale contract.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tyler-smith/go-bip39"
)

// Default values.
var (
	DefaultName            = "Advanced NFT"
	DefaultMaxTotalSupply  = uint64(8888)
	DefaultAllowlistPrice  = big.NewInt(60000000000000000) // 0.06 ETH
	DefaultPublicPrice     = big.NewInt(80000000000000000) // 0.08 ETH
	DefaultAllowlistCap    = uint64(2)
	DefaultPerTxPublicCap  = uint64(1)
	DefaultAdminFeePercent = uint64(10)
	DefaultPlaceholderURI  = "ipfs://unrevealed"
	DefaultStatePath       = "nftdrop.db"
	DefaultDevAccountCount = 10
	DefaultDevBalance      = new(big.Int).Mul(big.NewInt(10000), big.NewInt(1e18)) // 10000 ETH
	DefaultMnemonic        = "test test test test test test test test test test test junk"
)

// PayoutShare is one entry of the withdrawal split table.
type PayoutShare struct {
	Address common.Address `json:"address"`
	Percent uint64         `json:"percent"`
}

// Config defines the sale contract configuration.
type Config struct {
	// Collection configuration
	Name           string `json:"name"`
	MaxTotalSupply uint64 `json:"maxTotalSupply"`

	// Sale configuration
	AllowlistPrice  *big.Int `json:"allowlistPrice"`
	PublicPrice     *big.Int `json:"publicPrice"`
	AllowlistCap    uint64   `json:"allowlistCap"`    // per-address allowlist mints
	PerTxPublicCap  uint64   `json:"perTxPublicCap"`  // per-transaction public mints
	AdminFeePercent uint64   `json:"adminFeePercent"` // retained on refund

	// Addresses
	Owner common.Address `json:"owner"`
	DAO   common.Address `json:"dao"`

	// Allowlist commitment (zero until published)
	AllowlistRoot common.Hash `json:"allowlistRoot,omitempty"`

	// Metadata configuration
	BaseURI        string `json:"baseUri"`
	PlaceholderURI string `json:"placeholderUri"`

	// Withdrawal split; percents must sum to exactly 100 when present
	PayoutSplit []PayoutShare `json:"payoutSplit,omitempty"`

	// Local development configuration
	StatePath       string   `json:"statePath"`
	Mnemonic        string   `json:"mnemonic"`
	DevAccountCount int      `json:"devAccountCount"`
	DevBalance      *big.Int `json:"devBalance"`
	Debug           bool     `json:"debug"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Name:            DefaultName,
		MaxTotalSupply:  DefaultMaxTotalSupply,
		AllowlistPrice:  new(big.Int).Set(DefaultAllowlistPrice),
		PublicPrice:     new(big.Int).Set(DefaultPublicPrice),
		AllowlistCap:    DefaultAllowlistCap,
		PerTxPublicCap:  DefaultPerTxPublicCap,
		AdminFeePercent: DefaultAdminFeePercent,
		PlaceholderURI:  DefaultPlaceholderURI,
		StatePath:       DefaultStatePath,
		Mnemonic:        DefaultMnemonic,
		DevAccountCount: DefaultDevAccountCount,
		DevBalance:      new(big.Int).Set(DefaultDevBalance),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.MaxTotalSupply == 0 {
		errs = append(errs, "maxTotalSupply must be greater than 0")
	}

	if c.AllowlistPrice == nil || c.AllowlistPrice.Sign() < 0 {
		errs = append(errs, "allowlistPrice must be a non-negative amount")
	}

	if c.PublicPrice == nil || c.PublicPrice.Sign() < 0 {
		errs = append(errs, "publicPrice must be a non-negative amount")
	}

	if c.AdminFeePercent > 100 {
		errs = append(errs, "adminFeePercent must be between 0 and 100")
	}

	if c.Owner == (common.Address{}) {
		errs = append(errs, "owner address cannot be zero")
	}

	if c.DAO == (common.Address{}) {
		errs = append(errs, "dao address cannot be zero")
	}

	if len(c.PayoutSplit) > 0 {
		var sum uint64
		for i, share := range c.PayoutSplit {
			if share.Address == (common.Address{}) {
				errs = append(errs, fmt.Sprintf("payoutSplit[%d] address cannot be zero", i))
			}
			sum += share.Percent
		}
		if sum != 100 {
			errs = append(errs, fmt.Sprintf("payoutSplit percents must sum to 100, got %d", sum))
		}
	}

	if c.Mnemonic != "" && !bip39.IsMnemonicValid(c.Mnemonic) {
		errs = append(errs, "mnemonic is invalid")
	}

	if c.DevAccountCount < 0 {
		errs = append(errs, "devAccountCount cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

// LoadFromFile loads configuration from a JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return MergeWithDefaults(&cfg), nil
}

// MergeWithDefaults merges partial config with default values.
func MergeWithDefaults(partial *Config) *Config {
	def := Default()

	if partial.Name != "" {
		def.Name = partial.Name
	}
	if partial.MaxTotalSupply != 0 {
		def.MaxTotalSupply = partial.MaxTotalSupply
	}
	if partial.AllowlistPrice != nil {
		def.AllowlistPrice = partial.AllowlistPrice
	}
	if partial.PublicPrice != nil {
		def.PublicPrice = partial.PublicPrice
	}
	if partial.AllowlistCap != 0 {
		def.AllowlistCap = partial.AllowlistCap
	}
	if partial.PerTxPublicCap != 0 {
		def.PerTxPublicCap = partial.PerTxPublicCap
	}
	if partial.AdminFeePercent != 0 {
		def.AdminFeePercent = partial.AdminFeePercent
	}
	if partial.BaseURI != "" {
		def.BaseURI = partial.BaseURI
	}
	if partial.PlaceholderURI != "" {
		def.PlaceholderURI = partial.PlaceholderURI
	}
	if partial.StatePath != "" {
		def.StatePath = partial.StatePath
	}
	if partial.Mnemonic != "" {
		def.Mnemonic = partial.Mnemonic
	}
	if partial.DevAccountCount != 0 {
		def.DevAccountCount = partial.DevAccountCount
	}
	if partial.DevBalance != nil {
		def.DevBalance = partial.DevBalance
	}
	def.Owner = partial.Owner
	def.DAO = partial.DAO
	def.AllowlistRoot = partial.AllowlistRoot
	def.PayoutSplit = partial.PayoutSplit
	def.Debug = partial.Debug

	return def
}

// Copy creates a deep copy of the configuration.
func (c *Config) Copy() *Config {
	copied := *c

	if c.AllowlistPrice != nil {
		copied.AllowlistPrice = new(big.Int).Set(c.AllowlistPrice)
	}
	if c.PublicPrice != nil {
		copied.PublicPrice = new(big.Int).Set(c.PublicPrice)
	}
	if c.DevBalance != nil {
		copied.DevBalance = new(big.Int).Set(c.DevBalance)
	}
	if c.PayoutSplit != nil {
		copied.PayoutSplit = make([]PayoutShare, len(c.PayoutSplit))
		copy(copied.PayoutSplit, c.PayoutSplit)
	}

	return &copied
}

// HasAllowlist returns true if an allowlist commitment has been configured.
func (c *Config) HasAllowlist() bool {
	return c.AllowlistRoot != (common.Hash{})
}

// HasPayoutSplit returns true if a withdrawal split table is configured.
func (c *Config) HasPayoutSplit() bool {
	return len(c.PayoutSplit) > 0
}
