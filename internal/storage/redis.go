package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "docs:"

	// attempts before Update gives up on a key that keeps changing under it
	redisUpdateAttempts = 50
)

type RedisBackend struct {
	rdb redis.UniversalClient
}

func NewRedisBackend(rdb redis.UniversalClient) *RedisBackend {
	return &RedisBackend{rdb: rdb}
}

func (b *RedisBackend) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, redisKeyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage.RedisBackend.Load: get %s failed: %w", name, err)
	}

	return data, nil
}

func (b *RedisBackend) Replace(ctx context.Context, name string, data []byte) error {
	if err := b.rdb.Set(ctx, redisKeyPrefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("storage.RedisBackend.Replace: set %s failed: %w", name, err)
	}

	return nil
}

// Update is optimistic: WATCH the key, compute the next value and write it in MULTI/EXEC.
// A concurrent write aborts the transaction and the whole cycle is retried.
func (b *RedisBackend) Update(ctx context.Context, name string, fn UpdateFunc) error {
	const op = "storage.RedisBackend.Update"

	key := redisKeyPrefix + name
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s: get %s failed: %w", op, name, err)
		}

		next, err := fn(current)
		if err != nil || next == nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < redisUpdateAttempts; i++ {
		err := b.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return fmt.Errorf("%s: %s kept changing, gave up after %d attempts", op, name, redisUpdateAttempts)
}
