// cache/helper.go - JSON cache-aside helpers
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if Client == nil {
		return false, nil
	}
	s, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, b, ttl).Err()
}

// Delete removes keys. Used when an approval changes what the read side
// should return.
func Delete(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	Client.Del(ctx, keys...)
}

// DeletePrefix removes every key matching prefix*.
func DeletePrefix(ctx context.Context, prefix string) {
	if Client == nil {
		return
	}
	iter := Client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		Client.Del(ctx, iter.Val())
	}
}
