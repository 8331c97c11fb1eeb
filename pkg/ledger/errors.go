package ledger

import "errors"

// Token record errors.
var (
	ErrUnknownToken    = errors.New("token not recorded")
	ErrAlreadyRecorded = errors.New("token already recorded")
	ErrAlreadyRefunded = errors.New("token already refunded")
)

// Reservation and claim errors.
var (
	ErrInvalidReservationAmount   = errors.New("reservation amount invalid for address")
	ErrAmountExceedsTotalReserved = errors.New("amount exceeds total reserved pool")
)
