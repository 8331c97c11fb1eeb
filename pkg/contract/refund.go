package contract

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/davinharding/advanced-NFT-contract/pkg/ledger"
	"github.com/davinharding/advanced-NFT-contract/pkg/token"
)

// Refund reclaims a token from its current owner and returns the purchase
// price minus the admin fee. The token moves to the DAO address, the payout
// goes to payoutAddr, and the token is marked refunded — all three as one
// unit: a rejected payout unwinds the whole operation.
func (c *Contract) Refund(ctx TxContext, payoutAddr common.Address, tokenID uint64) (*big.Int, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	if !c.State().RefundActive {
		return nil, ErrRefundNotActive
	}
	if payoutAddr == (common.Address{}) {
		return nil, ErrZeroAddress
	}

	owner, err := c.registry.OwnerOf(tokenID)
	if err != nil {
		return nil, err
	}
	if owner != ctx.Caller {
		return nil, ErrNotOwner
	}

	refunded, err := c.ledger.IsRefunded(tokenID)
	if err != nil {
		return nil, err
	}
	if refunded {
		return nil, ledger.ErrAlreadyRefunded
	}

	price, err := c.ledger.PriceOf(tokenID)
	if err != nil {
		return nil, err
	}
	payout := c.payoutFor(price)
	if payout.Sign() == 0 {
		return nil, ErrFreeMintNotRefundable
	}

	j := c.beginJournal()

	if err := c.registry.Transfer(owner, c.DAO(), tokenID); err != nil {
		j.revert()
		return nil, err
	}
	if err := c.ledger.MarkRefunded(tokenID); err != nil {
		j.revert()
		return nil, err
	}
	if err := c.bank.Transfer(c.addr, payoutAddr, payout); err != nil {
		j.revert()
		return nil, fmt.Errorf("%w: %w", ErrPayoutFailed, err)
	}

	c.log.Info("refund",
		zap.Uint64("token", tokenID),
		zap.String("owner", owner.Hex()),
		zap.String("payoutTo", payoutAddr.Hex()),
		zap.String("payout", payout.String()))

	return payout, nil
}

// payoutFor computes the refund payout for a purchase price: the price
// minus the admin fee percent, floor-divided.
func (c *Contract) payoutFor(price *big.Int) *big.Int {
	c.mu.RLock()
	fee := c.adminFeePercent
	c.mu.RUnlock()

	kept := new(big.Int).SetUint64(100 - fee)
	payout := new(big.Int).Mul(price, kept)
	return payout.Div(payout, big.NewInt(100))
}

// IsRefunded reports whether a token has been refunded.
func (c *Contract) IsRefunded(tokenID uint64) (bool, error) {
	refunded, err := c.ledger.IsRefunded(tokenID)
	if errors.Is(err, ledger.ErrUnknownToken) {
		return false, token.ErrNonexistentToken
	}
	return refunded, err
}
