package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/davinharding/advanced-NFT-contract/pkg/config"
)

// requireOwner is the administrative gate: every setter passes through it.
func (c *Contract) requireOwner(ctx TxContext) error {
	if ctx.Caller != c.owner {
		return ErrUnauthorized
	}
	return nil
}

// SetAllowlistActive toggles the allowlist sale channel.
func (c *Contract) SetAllowlistActive(ctx TxContext, active bool) error {
	return c.setFlag(ctx, "allowlistActive", func(s *SaleState) { s.AllowlistActive = active })
}

// SetPublicActive toggles the public sale channel.
func (c *Contract) SetPublicActive(ctx TxContext, active bool) error {
	return c.setFlag(ctx, "publicActive", func(s *SaleState) { s.PublicActive = active })
}

// SetRevealed toggles metadata reveal.
func (c *Contract) SetRevealed(ctx TxContext, revealed bool) error {
	return c.setFlag(ctx, "revealed", func(s *SaleState) { s.Revealed = revealed })
}

// SetRefundActive toggles the refund window.
func (c *Contract) SetRefundActive(ctx TxContext, active bool) error {
	return c.setFlag(ctx, "refundActive", func(s *SaleState) { s.RefundActive = active })
}

// SetTransfersDisabled toggles the soulbound transfer policy.
func (c *Contract) SetTransfersDisabled(ctx TxContext, disabled bool) error {
	return c.setFlag(ctx, "transfersDisabled", func(s *SaleState) { s.TransfersDisabled = disabled })
}

func (c *Contract) setFlag(ctx TxContext, name string, apply func(*SaleState)) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	apply(&c.state)
	c.mu.Unlock()

	c.log.Info("sale flag updated", zap.String("flag", name))
	return nil
}

// SetAllowlistRoot publishes the allowlist commitment.
func (c *Contract) SetAllowlistRoot(ctx TxContext, root common.Hash) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.allowlistRoot = root
	c.mu.Unlock()

	c.log.Info("allowlist root updated", zap.String("root", root.Hex()))
	return nil
}

// SetAllowlistPrice updates the allowlist unit price.
func (c *Contract) SetAllowlistPrice(ctx TxContext, price *big.Int) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.allowlistPrice = new(big.Int).Set(price)
	c.mu.Unlock()
	return nil
}

// SetPublicPrice updates the public unit price.
func (c *Contract) SetPublicPrice(ctx TxContext, price *big.Int) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.publicPrice = new(big.Int).Set(price)
	c.mu.Unlock()
	return nil
}

// SetAllowlistCap updates the per-address allowlist claim cap.
func (c *Contract) SetAllowlistCap(ctx TxContext, limit uint64) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.allowlistCap = limit
	c.mu.Unlock()
	return nil
}

// SetPerTxPublicCap updates the per-transaction public mint cap.
func (c *Contract) SetPerTxPublicCap(ctx TxContext, limit uint64) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.perTxPublicCap = limit
	c.mu.Unlock()
	return nil
}

// SetAdminFeePercent updates the percentage retained on refunds.
func (c *Contract) SetAdminFeePercent(ctx TxContext, percent uint64) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}
	if percent > 100 {
		return ErrInvalidFeePercent
	}

	c.mu.Lock()
	c.adminFeePercent = percent
	c.mu.Unlock()
	return nil
}

// SetDAO updates the DAO address that receives reclaimed tokens.
func (c *Contract) SetDAO(ctx TxContext, dao common.Address) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}
	if dao == (common.Address{}) {
		return ErrZeroAddress
	}

	c.mu.Lock()
	c.dao = dao
	c.mu.Unlock()

	c.log.Info("dao address updated", zap.String("dao", dao.Hex()))
	return nil
}

// SetBaseURI updates the revealed metadata base URI.
func (c *Contract) SetBaseURI(ctx TxContext, uri string) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.baseURI = uri
	c.mu.Unlock()
	return nil
}

// SetPlaceholderURI updates the unrevealed placeholder URI.
func (c *Contract) SetPlaceholderURI(ctx TxContext, uri string) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.placeholderURI = uri
	c.mu.Unlock()
	return nil
}

// Reserve grants an address a reserved allocation out of the remaining
// supply. The reserved pool stays carved out of the capacity available to
// the paid channels.
func (c *Contract) Reserve(ctx TxContext, addr common.Address, amount uint64) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}
	if addr == (common.Address{}) {
		return ErrZeroAddress
	}

	if amount > c.maxTotalSupply ||
		c.registry.TotalSupply()+c.ledger.TotalReserved()+amount > c.maxTotalSupply {
		return ErrNotEnoughSupply
	}

	c.ledger.Grant(addr, amount)

	c.log.Info("reservation granted",
		zap.String("to", addr.Hex()),
		zap.Uint64("amount", amount))
	return nil
}

// Shuffle fixes the token-to-metadata mapping from an externally supplied
// seed. Re-running with a new seed re-permutes from scratch.
func (c *Contract) Shuffle(ctx TxContext, seed *big.Int) error {
	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.perm.Run(seed)

	c.log.Info("metadata shuffled", zap.String("seed", seed.String()))
	return nil
}

// Withdraw splits the contract's entire balance across the configured
// payout table. The remainder from floor division goes to the last payee.
func (c *Contract) Withdraw(ctx TxContext) error {
	if err := c.guard.acquire(); err != nil {
		return err
	}
	defer c.guard.release()

	if err := c.requireOwner(ctx); err != nil {
		return err
	}

	c.mu.RLock()
	split := append([]config.PayoutShare(nil), c.payoutSplit...)
	c.mu.RUnlock()
	if len(split) == 0 {
		return ErrNoPayoutSplit
	}

	balance := c.bank.BalanceOf(c.addr)
	if balance.Sign() == 0 {
		return nil
	}

	j := c.beginJournal()
	remaining := new(big.Int).Set(balance)

	for i, share := range split {
		amount := new(big.Int).Mul(balance, new(big.Int).SetUint64(share.Percent))
		amount.Div(amount, big.NewInt(100))
		if i == len(split)-1 {
			amount = new(big.Int).Set(remaining)
		}

		if err := c.bank.Transfer(c.addr, share.Address, amount); err != nil {
			j.revert()
			return fmt.Errorf("%w: %w", ErrPayoutFailed, err)
		}
		remaining.Sub(remaining, amount)
	}

	c.log.Info("withdraw", zap.String("total", balance.String()))
	return nil
}
