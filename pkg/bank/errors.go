package bank

import "errors"

// Ledger errors.
var (
	ErrNegativeAmount    = errors.New("negative amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferRejected  = errors.New("transfer rejected by recipient")
)
