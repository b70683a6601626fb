package ledger

import "errors"

// Execution failures are local and recoverable: they are returned as
// values, carry enough context to render a user message, and leave the
// ledger exactly as it was. Match with errors.Is.
var (
	// ErrInsufficientFunds: a buy's cost exceeds available cash.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNoPosition: a sell was requested on an asset with no open
	// position.
	ErrNoPosition = errors.New("no open position")

	// ErrInsufficientQuantity: a sell's amount exceeds the held amount.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrInvalidInput: non-positive amount or price, or slippage
	// outside [0, 100). Rejected before any state is read.
	ErrInvalidInput = errors.New("invalid input")
)
