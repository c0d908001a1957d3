package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/nathanyu/bank-transfer/internal/domain"
)

const (
	accountKeyPrefix = "account:"
	accountIndexKey  = "accounts"
)

// RedisStore keeps each account as one JSON document under account:<id>,
// with a set of ids as the collection index.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func accountKey(id string) string {
	return accountKeyPrefix + id
}

// CreateAccount persists a new account under a freshly assigned id.
func (s *RedisStore) CreateAccount(ctx context.Context, account *domain.Account) error {
	account.ID = NewID()
	account.Revision = 0

	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accountKey(account.ID), data, 0)
	pipe.SAdd(ctx, accountIndexKey, account.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccount loads one account document by id.
func (s *RedisStore) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", id, err)
	}

	var account domain.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account %s: %w", id, err)
	}
	return &account, nil
}

// ListAccounts returns every account in the index.
func (s *RedisStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	ids, err := s.client.SMembers(ctx, accountIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list account ids: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Account{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = accountKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry with no document, e.g. deleted concurrently.
			continue
		}
		var account domain.Account
		if err := json.Unmarshal([]byte(raw), &account); err != nil {
			return nil, fmt.Errorf("failed to unmarshal account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// SaveAccountPair commits both documents under WATCH so the write only goes
// through if neither account's revision moved since it was loaded.
func (s *RedisStore) SaveAccountPair(ctx context.Context, a, b *domain.Account) error {
	keyA, keyB := accountKey(a.ID), accountKey(b.ID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		for _, check := range []*domain.Account{a, b} {
			data, err := tx.Get(ctx, accountKey(check.ID)).Bytes()
			if err == redis.Nil {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to load account %s: %w", check.ID, err)
			}
			var stored domain.Account
			if err := json.Unmarshal(data, &stored); err != nil {
				return fmt.Errorf("failed to unmarshal account %s: %w", check.ID, err)
			}
			if stored.Revision != check.Revision {
				return ErrConflict
			}
		}

		nextA, nextB := *a, *b
		nextA.Revision++
		nextB.Revision++

		dataA, err := json.Marshal(&nextA)
		if err != nil {
			return fmt.Errorf("failed to marshal account %s: %w", a.ID, err)
		}
		dataB, err := json.Marshal(&nextB)
		if err != nil {
			return fmt.Errorf("failed to marshal account %s: %w", b.ID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keyA, dataA, 0)
			pipe.Set(ctx, keyB, dataB, 0)
			return nil
		})
		return err
	}, keyA, keyB)

	if err == redis.TxFailedErr {
		return ErrConflict
	}
	if err != nil {
		return err
	}

	a.Revision++
	b.Revision++
	return nil
}

// DeleteAllAccounts drops every account document and the index.
func (s *RedisStore) DeleteAllAccounts(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, accountIndexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list account ids: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, accountKey(id))
	}
	keys = append(keys, accountIndexKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
