package domain

import "time"

// Account is a named balance-holding record stored as one document.
// Revision counts committed writes and backs the optimistic-concurrency
// check in the store layer.
type Account struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Balance  Money  `json:"balance"`
	Revision int64  `json:"__v"`
}

// TransferCompleted is the event published after a transfer commits.
type TransferCompleted struct {
	TransferID      string    `json:"transfer_id"`
	FromAccount     string    `json:"from_account"`
	ToAccount       string    `json:"to_account"`
	Amount          Money     `json:"amount"`
	SenderBalance   Money     `json:"sender_balance"`
	ReceiverBalance Money     `json:"receiver_balance"`
	CompletedAt     time.Time `json:"completed_at"`
}
