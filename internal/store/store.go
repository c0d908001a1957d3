package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nathanyu/bank-transfer/internal/domain"
)

var (
	// ErrNotFound is returned when no account exists for the given id.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidID is returned when an id is not a well-formed account id.
	ErrInvalidID = errors.New("invalid account id")

	// ErrConflict is returned by SaveAccountPair when either account was
	// modified since it was loaded (revision mismatch).
	ErrConflict = errors.New("account revision conflict")
)

// Store is the document store holding account records.
type Store interface {
	// CreateAccount persists a new account, assigning its id and setting
	// the revision to 0.
	CreateAccount(ctx context.Context, account *domain.Account) error

	// GetAccount loads one account by id. Returns ErrInvalidID for a
	// malformed id and ErrNotFound when the account does not exist.
	GetAccount(ctx context.Context, id string) (*domain.Account, error)

	// ListAccounts returns all accounts in store order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// SaveAccountPair commits both accounts in a single atomic write.
	// The write succeeds only if the stored revision of each account still
	// equals the revision carried by the argument; on success both
	// revisions are incremented (in the store and on the arguments).
	// Returns ErrConflict when either account changed underneath.
	SaveAccountPair(ctx context.Context, a, b *domain.Account) error

	// DeleteAllAccounts removes every account.
	DeleteAllAccounts(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}

// NewID returns a fresh account id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a well-formed account id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
