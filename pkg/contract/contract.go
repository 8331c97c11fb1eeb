// Package contract implements the NFT sale contract: mint admission across
// three channels, per-token refund accounting, the soulbound transfer policy,
// metadata reveal, and the owner's administrative surface.
package contract

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/davinharding/advanced-NFT-contract/pkg/bank"
	"github.com/davinharding/advanced-NFT-contract/pkg/config"
	"github.com/davinharding/advanced-NFT-contract/pkg/ledger"
	"github.com/davinharding/advanced-NFT-contract/pkg/shuffle"
	"github.com/davinharding/advanced-NFT-contract/pkg/token"
)

// TxContext identifies the caller of an externally triggered operation.
// Origin is the externally owned account that signed the transaction; Caller
// is the immediate caller, which differs from Origin for contract-mediated
// calls. Value is the payment attached to the call (nil means zero).
type TxContext struct {
	Origin common.Address
	Caller common.Address
	Value  *big.Int
}

func (ctx TxContext) value() *big.Int {
	if ctx.Value == nil {
		return big.NewInt(0)
	}
	return ctx.Value
}

// SaleState holds the independent sale flags, each toggled only through the
// administrative gate.
type SaleState struct {
	AllowlistActive   bool
	PublicActive      bool
	Revealed          bool
	RefundActive      bool
	TransfersDisabled bool
}

// Contract is the sale contract. All externally triggered operations are
// serialized; mint and refund entry points additionally share one
// reentrancy guard.
type Contract struct {
	owner common.Address
	addr  common.Address // the contract's own bank account

	maxTotalSupply uint64

	// Owner-mutable sale parameters
	dao             common.Address
	allowlistPrice  *big.Int
	publicPrice     *big.Int
	allowlistCap    uint64
	perTxPublicCap  uint64
	adminFeePercent uint64
	allowlistRoot   common.Hash
	baseURI         string
	placeholderURI  string
	payoutSplit     []config.PayoutShare

	state SaleState

	registry *token.Registry
	ledger   *ledger.Ledger
	bank     *bank.Bank
	perm     *shuffle.Permutation

	guard      reentrancyGuard
	collecting bool // true while the contract is pulling a mint payment

	log *zap.Logger

	mu sync.RWMutex
}

// DeriveAddress computes the contract's bank account address from the
// collection name, so a deployment is stable across restarts.
func DeriveAddress(name string) common.Address {
	hash := crypto.Keccak256([]byte("nft-sale-contract:" + name))
	return common.BytesToAddress(hash[12:])
}

// New creates a sale contract over the given collaborators, installs the
// transfer gate on the registry, and attaches the contract's payment
// receiver to the bank. A nil logger disables logging.
func New(cfg *config.Config, reg *token.Registry, led *ledger.Ledger, bk *bank.Bank, logger *zap.Logger) *Contract {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Contract{
		owner:           cfg.Owner,
		addr:            DeriveAddress(cfg.Name),
		maxTotalSupply:  cfg.MaxTotalSupply,
		dao:             cfg.DAO,
		allowlistPrice:  new(big.Int).Set(cfg.AllowlistPrice),
		publicPrice:     new(big.Int).Set(cfg.PublicPrice),
		allowlistCap:    cfg.AllowlistCap,
		perTxPublicCap:  cfg.PerTxPublicCap,
		adminFeePercent: cfg.AdminFeePercent,
		allowlistRoot:   cfg.AllowlistRoot,
		baseURI:         cfg.BaseURI,
		placeholderURI:  cfg.PlaceholderURI,
		payoutSplit:     append([]config.PayoutShare(nil), cfg.PayoutSplit...),
		state:           SaleState{TransfersDisabled: true},
		registry:        reg,
		ledger:          led,
		bank:            bk,
		perm:            shuffle.New(cfg.MaxTotalSupply),
		log:             logger,
	}

	reg.SetBeforeTransfer(c.beforeTokenTransfer)
	bk.SetReceiver(c.addr, bank.ReceiverFunc(c.onValueReceived))

	return c
}

// Address returns the contract's bank account address.
func (c *Contract) Address() common.Address {
	return c.addr
}

// Owner returns the administrator address.
func (c *Contract) Owner() common.Address {
	return c.owner
}

// DAO returns the DAO address that receives reclaimed tokens.
func (c *Contract) DAO() common.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dao
}

// State returns a copy of the sale flags.
func (c *Contract) State() SaleState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// MaxTotalSupply returns the collection capacity.
func (c *Contract) MaxTotalSupply() uint64 {
	return c.maxTotalSupply
}

// AllowlistPrice returns the allowlist unit price.
func (c *Contract) AllowlistPrice() *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return new(big.Int).Set(c.allowlistPrice)
}

// PublicPrice returns the public unit price.
func (c *Contract) PublicPrice() *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return new(big.Int).Set(c.publicPrice)
}

// onValueReceived rejects value sent directly to the contract. The only
// accepted inbound transfers are the payment pulls the contract itself
// initiates during a guarded mint.
func (c *Contract) onValueReceived(from common.Address, amount *big.Int) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.collecting {
		return nil
	}
	return ErrDirectPayment
}

// collectPayment pulls an exact mint payment from the payer into the
// contract's account.
func (c *Contract) collectPayment(payer common.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}

	c.mu.Lock()
	c.collecting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.collecting = false
		c.mu.Unlock()
	}()

	return c.bank.Transfer(payer, c.addr, amount)
}

// Fallback handles calls to operations the contract does not define.
func (c *Contract) Fallback(method string) error {
	return ErrUnknownOperation
}
