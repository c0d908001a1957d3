package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nathanyu/bank-transfer/internal/domain"
	"github.com/nathanyu/bank-transfer/internal/store"
	"github.com/nathanyu/bank-transfer/internal/telemetry"
)

// Seed accounts created by SeedAccounts.
var seedAccounts = []struct {
	name    string
	balance int64
}{
	{"Alice", 1000},
	{"Bob", 500},
}

// EventPublisher receives the event emitted after a committed transfer.
type EventPublisher interface {
	PublishTransferCompleted(ctx context.Context, event domain.TransferCompleted) error
}

// Service implements the transfer operations on top of an injected store.
type Service struct {
	store  store.Store
	events EventPublisher // nil when event publishing is disabled

	transferTimeout time.Duration
	maxRetries      int
}

// NewService creates a transfer service. events may be nil.
func NewService(st store.Store, events EventPublisher) *Service {
	return &Service{
		store:           st,
		events:          events,
		transferTimeout: 5 * time.Second,
		maxRetries:      3,
	}
}

// SeedAccounts replaces the entire account set with the two fixed seed
// accounts and returns them in creation order.
func (s *Service) SeedAccounts(ctx context.Context) ([]domain.Account, error) {
	if err := s.store.DeleteAllAccounts(ctx); err != nil {
		return nil, err
	}

	created := make([]domain.Account, 0, len(seedAccounts))
	for _, seed := range seedAccounts {
		account := domain.Account{
			Name:    seed.name,
			Balance: domain.NewMoney(seed.balance),
		}
		if err := s.store.CreateAccount(ctx, &account); err != nil {
			return nil, err
		}
		created = append(created, account)
	}

	slog.InfoContext(ctx, "accounts seeded", "count", len(created))
	return created, nil
}

// ListAccounts returns all accounts in store order.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.store.ListAccounts(ctx)
}

// GetAccount returns one account. Store errors (store.ErrNotFound,
// store.ErrInvalidID) pass through for the handler to map.
func (s *Service) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.store.GetAccount(ctx, id)
}

// DeleteAllAccounts removes every account.
func (s *Service) DeleteAllAccounts(ctx context.Context) error {
	return s.store.DeleteAllAccounts(ctx)
}

// TransferResult carries the outcome of a committed transfer.
type TransferResult struct {
	TransferID      string
	Message         string
	SenderBalance   domain.Money
	ReceiverBalance domain.Money
}

// Transfer moves amount from the account fromID to the account toID.
//
// Validation runs in a fixed order (missing fields, amount, same account,
// sender lookup, receiver lookup, funds) so every rejection happens before
// any write. The debit and credit are then committed as one atomic pair-write;
// if either account's revision moved since it was loaded the whole transfer
// is retried with fresh reads, so a partial debit can never be committed.
func (s *Service) Transfer(ctx context.Context, fromID, toID string, amount domain.Money) (*TransferResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.transferTimeout)
	defer cancel()

	if fromID == "" || toID == "" {
		return nil, ErrMissingFields
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSameAccount
	}

	transferID := uuid.Must(uuid.NewV7()).String()
	start := time.Now()

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		sender, err := s.store.GetAccount(ctx, fromID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSenderNotFound
		}
		if err != nil {
			return nil, err
		}

		receiver, err := s.store.GetAccount(ctx, toID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		if err != nil {
			return nil, err
		}

		if sender.Balance.LessThan(amount) {
			telemetry.TransfersTotal.WithLabelValues("insufficient_funds").Inc()
			return nil, ErrInsufficientFunds
		}

		sender.Balance = sender.Balance.Sub(amount)
		receiver.Balance = receiver.Balance.Add(amount)

		err = s.store.SaveAccountPair(ctx, sender, receiver)
		if errors.Is(err, store.ErrConflict) {
			// Someone else committed between our reads and the write.
			// Reload and revalidate from scratch.
			telemetry.TransferConflictsTotal.Inc()
			slog.WarnContext(ctx, "transfer hit revision conflict, retrying",
				"transfer_id", transferID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			telemetry.TransfersTotal.WithLabelValues("failed").Inc()
			return nil, err
		}

		telemetry.TransfersTotal.WithLabelValues("success").Inc()
		telemetry.TransferAmount.Observe(amount.InexactFloat64())
		telemetry.TransferDuration.Observe(time.Since(start).Seconds())

		result := &TransferResult{
			TransferID: transferID,
			Message: fmt.Sprintf("Transferred %s from %s to %s",
				amount.String(), sender.Name, receiver.Name),
			SenderBalance:   sender.Balance,
			ReceiverBalance: receiver.Balance,
		}

		slog.InfoContext(ctx, "transfer completed",
			"transfer_id", transferID,
			"from", fromID,
			"to", toID,
			"amount", amount.String(),
		)

		s.publishTransferCompleted(ctx, transferID, sender, receiver, amount)
		return result, nil
	}

	telemetry.TransfersTotal.WithLabelValues("failed").Inc()
	return nil, fmt.Errorf("transfer %s aborted after %d revision conflicts", transferID, s.maxRetries+1)
}

// publishTransferCompleted emits the post-commit event. Publishing is
// best-effort: the transfer already committed, so failures are only logged.
func (s *Service) publishTransferCompleted(ctx context.Context, transferID string, sender, receiver *domain.Account, amount domain.Money) {
	if s.events == nil {
		return
	}

	event := domain.TransferCompleted{
		TransferID:      transferID,
		FromAccount:     sender.ID,
		ToAccount:       receiver.ID,
		Amount:          amount,
		SenderBalance:   sender.Balance,
		ReceiverBalance: receiver.Balance,
		CompletedAt:     time.Now().UTC(),
	}

	if err := s.events.PublishTransferCompleted(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish transfer event",
			"transfer_id", transferID, "error", err)
	}
}
