package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss はキーが存在しないことを表します
var ErrCacheMiss = errors.New("cache miss")

// RedisStore は名前空間ごとに値をJSONで保持するStoreです
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStore はcache:{namespace}: 配下にキーを置くRedisStoreを返します
func NewRedisStore(client redis.Cmdable, namespace string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: CacheKey(namespace, ""), ttl: ttl}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Get はキーの値をdestへデコードします
// 壊れた値は削除してミス扱いにする
func (s *RedisStore) Get(ctx context.Context, key string, dest any) error {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case err != nil:
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		_ = s.client.Del(ctx, s.key(key)).Err()
		return ErrCacheMiss
	}
	return nil
}

// Set は値を保存します。ttlが0以下なら既定値
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	return s.client.Set(ctx, s.key(key), raw, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

var _ Store = (*RedisStore)(nil)
