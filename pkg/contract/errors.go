package contract

import "errors"

// Admission errors. All caller-correctable; the operation rolls back with
// zero state mutation.
var (
	ErrNotEnoughSupply     = errors.New("not enough supply")
	ErrMintingFromContract = errors.New("minting from a contract is not allowed")
	ErrIncorrectPayment    = errors.New("incorrect payment amount")
	ErrAllowlistNotActive  = errors.New("allowlist mint is not active")
	ErrPublicMintNotActive = errors.New("public mint is not active")
	ErrClaimLimitExceeded  = errors.New("allowlist claim limit exceeded")
	ErrPerTxLimitExceeded  = errors.New("per-transaction mint limit exceeded")
	ErrInvalidProof        = errors.New("invalid allowlist proof")
)

// Transfer policy errors.
var (
	ErrTransfersDisabled = errors.New("transfers are disabled")
	ErrMultiTokenMove    = errors.New("multi-token moves are not allowed")
	ErrOneTokenPerWallet = errors.New("destination already holds a token")
)

// Refund errors.
var (
	ErrRefundNotActive       = errors.New("refund is not active")
	ErrZeroAddress           = errors.New("zero address")
	ErrNotOwner              = errors.New("caller does not own the token")
	ErrFreeMintNotRefundable = errors.New("free mint is not refundable")
	ErrPayoutFailed          = errors.New("refund payout failed")
)

// Access and protocol errors.
var (
	ErrUnauthorized      = errors.New("unauthorized operation")
	ErrReentrantCall     = errors.New("reentrant call")
	ErrDirectPayment     = errors.New("contract rejects direct payment")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrInvalidFeePercent = errors.New("fee percent must be between 0 and 100")
	ErrNoPayoutSplit     = errors.New("no payout split configured")
)
