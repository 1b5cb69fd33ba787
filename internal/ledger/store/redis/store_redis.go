package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"bursar/internal/ledger"
)

// RedisLedgerStore keeps settlement slots as plain keys. Entries are
// permanent records, so no TTL is set.
type RedisLedgerStore struct {
	client redis.Cmdable
}

func New(client redis.Cmdable) *RedisLedgerStore {
	return &RedisLedgerStore{client: client}
}

func (s *RedisLedgerStore) IsSettled(ctx context.Context, key ledger.Key) (bool, error) {
	n, err := s.client.Exists(ctx, key.String()).Result()
	if err != nil {
		return false, fmt.Errorf("read ledger entry: %w", err)
	}
	return n > 0, nil
}

func (s *RedisLedgerStore) MarkSettled(ctx context.Context, key ledger.Key) error {
	if err := s.client.Set(ctx, key.String(), "1", 0).Err(); err != nil {
		return fmt.Errorf("mark ledger entry: %w", err)
	}
	return nil
}
