package contract

import (
	"github.com/ethereum/go-ethereum/common"
)

// beforeTokenTransfer is the transfer gate installed on the token registry.
// It runs on every ownership change, including mints (zero-address origin),
// and is pure validation: rejection prevents the change, nothing else.
func (c *Contract) beforeTokenTransfer(from, to common.Address, startID, quantity uint64) error {
	dao := c.DAO()

	if c.State().TransfersDisabled && to != dao && from != (common.Address{}) {
		return ErrTransfersDisabled
	}
	if quantity > 1 {
		return ErrMultiTokenMove
	}
	if to != dao && c.registry.BalanceOf(to) >= 1 {
		return ErrOneTokenPerWallet
	}
	return nil
}

// TransferFrom moves a token through the transfer gate on behalf of its
// owner or approved spender.
func (c *Contract) TransferFrom(ctx TxContext, from, to common.Address, tokenID uint64) error {
	return c.registry.TransferFrom(ctx.Caller, from, to, tokenID)
}
