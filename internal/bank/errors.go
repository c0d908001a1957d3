package bank

import "errors"

// Domain errors for the transfer service. The HTTP handler maps these onto
// status codes; anything else coming out of the service is a store failure
// and surfaces as a 500.
var (
	// ErrMissingFields: a required transfer field was absent.
	ErrMissingFields = errors.New("fromUserId, toUserId and amount are required")

	// ErrInvalidAmount: the transfer amount was zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrSameAccount: sender and receiver are the same account.
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrSenderNotFound: no account exists for fromUserId.
	ErrSenderNotFound = errors.New("sender account not found")

	// ErrReceiverNotFound: no account exists for toUserId.
	ErrReceiverNotFound = errors.New("receiver account not found")

	// ErrInsufficientFunds: the sender's balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
