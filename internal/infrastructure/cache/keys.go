package cache

import "fmt"

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	PrefixRateLimit KeyPrefix = "ratelimit" // ratelimit:{type}:{identifier}
	PrefixCache     KeyPrefix = "cache"     // cache:{namespace}:{key}
)

// NamespaceAttendee は参加者レコードのキャッシュ名前空間です
const NamespaceAttendee = "attendee"

// RateLimitKey はレート制限キーを生成します
func RateLimitKey(limitType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixRateLimit, limitType, identifier)
}

// CacheKey は汎用キャッシュキーを生成します
func CacheKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixCache, namespace, key)
}
