package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Реализация на Redis: каждый ключ хранится как отдельная строка с префиксом.
type RedisKVRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisKVRepository(client redis.UniversalClient, prefix string) *RedisKVRepository {
	return &RedisKVRepository{client: client, prefix: prefix}
}

func (r *RedisKVRepository) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (r *RedisKVRepository) WriteBatch(ctx context.Context, set map[string]string, del []string) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for k, v := range set {
			p.Set(ctx, r.prefix+k, v, 0)
		}
		if len(del) > 0 {
			keys := make([]string, 0, len(del))
			for _, k := range del {
				keys = append(keys, r.prefix+k)
			}
			p.Del(ctx, keys...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write batch: %w", err)
	}
	return nil
}
