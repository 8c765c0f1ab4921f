package otpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "otp:"

// Redis is the external-cache Store backend for multi-instance deployments.
// Expiry is enforced both by the key TTL and by the IssuedAt check on read,
// so a backend with a lagging clock still honors the validity window.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedis(addr string, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (r *Redis) Set(ctx context.Context, identifier string, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal otp entry: %w", err)
	}
	return r.client.Set(ctx, redisKeyPrefix+identifier, payload, r.ttl).Err()
}

func (r *Redis) Get(ctx context.Context, identifier string) (Entry, bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+identifier).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("unmarshal otp entry: %w", err)
	}
	if r.now().Sub(e.IssuedAt) > r.ttl {
		if err := r.client.Del(ctx, redisKeyPrefix+identifier).Err(); err != nil {
			return Entry{}, false, err
		}
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (r *Redis) Delete(ctx context.Context, identifier string) (bool, error) {
	n, err := r.client.Del(ctx, redisKeyPrefix+identifier).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
