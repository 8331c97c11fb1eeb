package token

import "errors"

// Registry errors.
var (
	ErrNonexistentToken = errors.New("token does not exist")
	ErrZeroAddress      = errors.New("zero address")
	ErrWrongOwner       = errors.New("transfer from wrong owner")
	ErrNotAuthorized    = errors.New("caller is not owner nor approved")
	ErrZeroQuantity     = errors.New("mint quantity is zero")
)
