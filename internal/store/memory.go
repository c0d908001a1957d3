package store

import (
	"context"
	"sync"

	"github.com/nathanyu/bank-transfer/internal/domain"
)

// MemoryStore is an in-process Store used by tests and local development.
// A single mutex serializes all writes, so SaveAccountPair is naturally
// atomic; the revision check keeps the semantics identical to RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]domain.Account)}
}

func (s *MemoryStore) CreateAccount(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = NewID()
	account.Revision = 0
	s.accounts[account.ID] = *account
	return nil
}

func (s *MemoryStore) GetAccount(_ context.Context, id string) (*domain.Account, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (s *MemoryStore) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *MemoryStore) SaveAccountPair(_ context.Context, a, b *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, check := range []*domain.Account{a, b} {
		stored, ok := s.accounts[check.ID]
		if !ok {
			return ErrNotFound
		}
		if stored.Revision != check.Revision {
			return ErrConflict
		}
	}

	a.Revision++
	b.Revision++
	s.accounts[a.ID] = *a
	s.accounts[b.ID] = *b
	return nil
}

func (s *MemoryStore) DeleteAllAccounts(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]domain.Account)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
