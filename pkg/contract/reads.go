package contract

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/davinharding/advanced-NFT-contract/pkg/merkle"
	"github.com/davinharding/advanced-NFT-contract/pkg/token"
)

// Sale status values returned by SaleStatus, in priority order.
const (
	StatusPublic    = "public"
	StatusAllowlist = "allowlist"
	StatusClosed    = "closed"
)

// SaleStatus reports which sale channel is open, public taking priority.
func (c *Contract) SaleStatus() string {
	state := c.State()
	switch {
	case state.PublicActive:
		return StatusPublic
	case state.AllowlistActive:
		return StatusAllowlist
	default:
		return StatusClosed
	}
}

// TokenURI resolves a token's metadata URI. Before reveal every token
// resolves to the placeholder; after reveal the token maps through the
// metadata permutation, or to itself if the permutation was never run.
func (c *Contract) TokenURI(tokenID uint64) (string, error) {
	if !c.registry.Exists(tokenID) {
		return "", token.ErrNonexistentToken
	}

	c.mu.RLock()
	revealed := c.state.Revealed
	base := c.baseURI
	placeholder := c.placeholderURI
	c.mu.RUnlock()

	if !revealed {
		return placeholder, nil
	}
	return fmt.Sprintf("%s%d", base, c.perm.IndexFor(tokenID)), nil
}

// IsOnAllowList verifies a membership proof against the published
// allowlist commitment.
func (c *Contract) IsOnAllowList(proof []common.Hash, addr common.Address) bool {
	c.mu.RLock()
	root := c.allowlistRoot
	c.mu.RUnlock()

	return merkle.VerifyProof(proof, addr, root)
}

// TotalSupply returns the number of tokens minted so far.
func (c *Contract) TotalSupply() uint64 {
	return c.registry.TotalSupply()
}

// TotalReserved returns the remaining reserved pool.
func (c *Contract) TotalReserved() uint64 {
	return c.ledger.TotalReserved()
}

// ReservedFor returns the remaining reserved allocation for an address.
func (c *Contract) ReservedFor(addr common.Address) uint64 {
	return c.ledger.ReservedFor(addr)
}

// ClaimedBy returns the allowlist mints already executed by an address.
func (c *Contract) ClaimedBy(addr common.Address) uint64 {
	return c.ledger.ClaimedBy(addr)
}
