package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"newswire/internal/story"
)

// Redis stores the encoded entry under the key with the TTL as expiry.
// The timestamp is still checked on read, so a shortened TTL takes effect
// for entries written before it changed.
type Redis struct {
	base
	client *redis.Client
}

func NewRedis(client *redis.Client, opts ...Option) *Redis {
	return &Redis{base: newBase(opts), client: client}
}

func (r *Redis) Read(ctx context.Context) ([]story.Story, bool) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logf("cache: redis read %q failed: %v", r.key, err)
		return nil, false
	}
	return r.serve(data)
}

func (r *Redis) Write(ctx context.Context, stories []story.Story) error {
	data, err := r.encode(stories)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}
