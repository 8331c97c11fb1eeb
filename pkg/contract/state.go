package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/davinharding/advanced-NFT-contract/pkg/bank"
	"github.com/davinharding/advanced-NFT-contract/pkg/config"
	"github.com/davinharding/advanced-NFT-contract/pkg/ledger"
	"github.com/davinharding/advanced-NFT-contract/pkg/token"
)

// StateDump is a complete serializable capture of the contract and its
// collaborators, used for persistence.
type StateDump struct {
	Sale SaleState

	DAO             common.Address
	AllowlistPrice  *big.Int
	PublicPrice     *big.Int
	AllowlistCap    uint64
	PerTxPublicCap  uint64
	AdminFeePercent uint64
	AllowlistRoot   common.Hash
	BaseURI         string
	PlaceholderURI  string
	PayoutSplit     []config.PayoutShare

	Registry    *token.Dump
	Ledger      *ledger.Dump
	Bank        *bank.Dump
	Permutation []uint64
}

// ExportState captures the full contract state for persistence.
func (c *Contract) ExportState() *StateDump {
	c.mu.RLock()
	dump := &StateDump{
		Sale:            c.state,
		DAO:             c.dao,
		AllowlistPrice:  new(big.Int).Set(c.allowlistPrice),
		PublicPrice:     new(big.Int).Set(c.publicPrice),
		AllowlistCap:    c.allowlistCap,
		PerTxPublicCap:  c.perTxPublicCap,
		AdminFeePercent: c.adminFeePercent,
		AllowlistRoot:   c.allowlistRoot,
		BaseURI:         c.baseURI,
		PlaceholderURI:  c.placeholderURI,
		PayoutSplit:     append([]config.PayoutShare(nil), c.payoutSplit...),
	}
	c.mu.RUnlock()

	dump.Registry = c.registry.Dump()
	dump.Ledger = c.ledger.Dump()
	dump.Bank = c.bank.Dump()
	dump.Permutation = c.perm.Values()

	return dump
}

// RestoreState replaces the contract and collaborator state from a dump.
func (c *Contract) RestoreState(dump *StateDump) {
	if dump == nil {
		return
	}

	c.mu.Lock()
	c.state = dump.Sale
	c.dao = dump.DAO
	if dump.AllowlistPrice != nil {
		c.allowlistPrice = new(big.Int).Set(dump.AllowlistPrice)
	}
	if dump.PublicPrice != nil {
		c.publicPrice = new(big.Int).Set(dump.PublicPrice)
	}
	c.allowlistCap = dump.AllowlistCap
	c.perTxPublicCap = dump.PerTxPublicCap
	c.adminFeePercent = dump.AdminFeePercent
	c.allowlistRoot = dump.AllowlistRoot
	c.baseURI = dump.BaseURI
	c.placeholderURI = dump.PlaceholderURI
	c.payoutSplit = append([]config.PayoutShare(nil), dump.PayoutSplit...)
	c.mu.Unlock()

	c.registry.Load(dump.Registry)
	c.ledger.Load(dump.Ledger)
	c.bank.Load(dump.Bank)
	c.perm.Load(dump.Permutation)
}
