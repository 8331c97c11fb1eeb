package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/davinharding/advanced-NFT-contract/pkg/merkle"
)

// InternalMint issues tokens against the caller's reserved allocation.
// Reserved mints are free; the token records carry a zero price and are
// never refundable.
func (c *Contract) InternalMint(ctx TxContext, amount uint64) ([]uint64, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	if ctx.value().Sign() != 0 {
		return nil, ErrIncorrectPayment
	}
	if amount > c.maxTotalSupply || c.registry.TotalSupply()+amount > c.maxTotalSupply {
		return nil, ErrNotEnoughSupply
	}

	j := c.beginJournal()

	if err := c.ledger.ConsumeReservation(ctx.Caller, amount); err != nil {
		j.revert()
		return nil, err
	}

	ids, err := c.issue(ctx.Caller, amount, big.NewInt(0))
	if err != nil {
		j.revert()
		return nil, err
	}

	c.log.Info("internal mint",
		zap.String("to", ctx.Caller.Hex()),
		zap.Uint64("amount", amount),
		zap.Uint64s("ids", ids))

	return ids, nil
}

// AllowlistMint issues tokens to an allowlisted caller against an exact
// payment at the allowlist price.
func (c *Contract) AllowlistMint(ctx TxContext, amount uint64, proof []common.Hash) ([]uint64, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	if ctx.Caller != ctx.Origin {
		return nil, ErrMintingFromContract
	}
	if !c.State().AllowlistActive {
		return nil, ErrAllowlistNotActive
	}

	price := c.AllowlistPrice()
	if ctx.value().Cmp(totalCost(price, amount)) != 0 {
		return nil, ErrIncorrectPayment
	}

	c.mu.RLock()
	claimCap := c.allowlistCap
	root := c.allowlistRoot
	c.mu.RUnlock()

	if c.ledger.ClaimedBy(ctx.Caller)+amount > claimCap {
		return nil, ErrClaimLimitExceeded
	}
	if !merkle.VerifyProof(proof, ctx.Caller, root) {
		return nil, ErrInvalidProof
	}
	if err := c.checkSaleCapacity(amount); err != nil {
		return nil, err
	}

	j := c.beginJournal()

	if err := c.collectPayment(ctx.Caller, ctx.value()); err != nil {
		j.revert()
		return nil, err
	}
	c.ledger.AddClaims(ctx.Caller, amount)

	ids, err := c.issue(ctx.Caller, amount, price)
	if err != nil {
		j.revert()
		return nil, err
	}

	c.log.Info("allowlist mint",
		zap.String("to", ctx.Caller.Hex()),
		zap.Uint64("amount", amount),
		zap.String("paid", ctx.value().String()),
		zap.Uint64s("ids", ids))

	return ids, nil
}

// PublicMint issues tokens to any caller against an exact payment at the
// public price.
func (c *Contract) PublicMint(ctx TxContext, amount uint64) ([]uint64, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	if ctx.Caller != ctx.Origin {
		return nil, ErrMintingFromContract
	}
	if !c.State().PublicActive {
		return nil, ErrPublicMintNotActive
	}

	c.mu.RLock()
	perTxCap := c.perTxPublicCap
	c.mu.RUnlock()
	if amount > perTxCap {
		return nil, ErrPerTxLimitExceeded
	}

	price := c.PublicPrice()
	if ctx.value().Cmp(totalCost(price, amount)) != 0 {
		return nil, ErrIncorrectPayment
	}
	if err := c.checkSaleCapacity(amount); err != nil {
		return nil, err
	}

	j := c.beginJournal()

	if err := c.collectPayment(ctx.Caller, ctx.value()); err != nil {
		j.revert()
		return nil, err
	}

	ids, err := c.issue(ctx.Caller, amount, price)
	if err != nil {
		j.revert()
		return nil, err
	}

	c.log.Info("public mint",
		zap.String("to", ctx.Caller.Hex()),
		zap.Uint64("amount", amount),
		zap.String("paid", ctx.value().String()),
		zap.Uint64s("ids", ids))

	return ids, nil
}

// checkSaleCapacity enforces the shared capacity pool for the paid channels:
// the reserved pool stays carved out of the total supply.
func (c *Contract) checkSaleCapacity(amount uint64) error {
	reserved := c.ledger.TotalReserved()
	if amount > c.maxTotalSupply || reserved > c.maxTotalSupply {
		return ErrNotEnoughSupply
	}
	if c.registry.TotalSupply()+amount > c.maxTotalSupply-reserved {
		return ErrNotEnoughSupply
	}
	return nil
}

// issue mints the tokens, records their purchase price, and auto-approves
// the DAO on every token minted to a non-DAO wallet so a later reclaim
// cannot be blocked by the holder.
func (c *Contract) issue(to common.Address, amount uint64, price *big.Int) ([]uint64, error) {
	ids, err := c.registry.Mint(to, amount)
	if err != nil {
		return nil, err
	}
	if err := c.ledger.RecordMint(ids, price); err != nil {
		return nil, err
	}

	if dao := c.DAO(); to != dao {
		for _, id := range ids {
			if err := c.registry.Approve(dao, id); err != nil {
				return nil, err
			}
		}
	}

	return ids, nil
}

// totalCost returns price × amount.
func totalCost(price *big.Int, amount uint64) *big.Int {
	return new(big.Int).Mul(price, new(big.Int).SetUint64(amount))
}
