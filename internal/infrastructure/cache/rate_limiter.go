package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult はレート制限チェックの結果を表します
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	RetryAt   time.Time // 拒否された場合のリトライ可能時刻
}

// RateLimitConfig はレート制限の設定を定義します
type RateLimitConfig struct {
	Type     string
	Requests int
	Window   time.Duration
}

// ResumeUploadRateLimit は履歴書アップロード要求の制限設定を返します
func ResumeUploadRateLimit(requests int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Type: "resume:upload", Requests: requests, Window: window}
}

// RateLimiter はRedisのスライディングウィンドウでレート制限を行います
type RateLimiter struct {
	client redis.Scripter
}

// NewRateLimiter は新しいRateLimiterを作成します
func NewRateLimiter(client redis.Scripter) *RateLimiter {
	return &RateLimiter{client: client}
}

// ソート済みセットに要求時刻を記録し、ウィンドウ外の要素を捨てる
var slidingWindowScript = redis.NewScript(`
    local key = KEYS[1]
    local now = tonumber(ARGV[1])
    local window = tonumber(ARGV[2])
    local limit = tonumber(ARGV[3])

    redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
    local count = redis.call('ZCARD', key)

    if count < limit then
        redis.call('ZADD', key, now, now .. ':' .. math.random())
        redis.call('PEXPIRE', key, window)
        return {1, limit - count - 1, 0}
    end

    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    return {0, 0, tonumber(oldest[2]) + window}
`)

// Allow は要求が許可されるかを判定し、許可された場合は記録します
func (r *RateLimiter) Allow(ctx context.Context, identifier string, config RateLimitConfig) (*RateLimitResult, error) {
	key := RateLimitKey(config.Type, identifier)
	now := time.Now().UnixMilli()

	result, err := slidingWindowScript.Run(ctx, r.client, []string{key}, now, config.Window.Milliseconds(), config.Requests).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}

	res := &RateLimitResult{
		Allowed:   result[0] == 1,
		Remaining: int(result[1]),
	}
	if !res.Allowed {
		res.RetryAt = time.UnixMilli(result[2])
	}
	return res, nil
}
