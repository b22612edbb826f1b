package blackboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "arbor:"

// Redis is a Blackboard stored in a redis hash, so several agents can share
// the facts of a squad. Values are JSON encoded; numbers read back as float64.
type Redis struct {
	client *backend.Client
	prefix string
	name   string
}

// RedisOption configures a Redis blackboard.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix. The default is "arbor:".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis connects to addr and stores facts under the hash name.
func NewRedis(addr, name string, opts ...RedisOption) *Redis {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), name, opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, name string, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: defaultPrefix, name: name}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the hash key holding the facts.
func (r *Redis) Key() string { return r.prefix + r.name }

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error { return r.client.Close() }

// Get implements Blackboard.
func (r *Redis) Get(ctx context.Context, key string) (any, bool, error) {
	raw, err := r.client.HGet(ctx, r.Key(), key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, fmt.Errorf("decode fact %q: %w", key, err)
	}
	return v, true, nil
}

// Set implements Blackboard.
func (r *Redis) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode fact %q: %w", key, err)
	}
	if err := r.client.HSet(ctx, r.Key(), key, raw).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete implements Blackboard.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.Key(), key).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}
	return nil
}

// Snapshot implements Blackboard.
func (r *Redis) Snapshot(ctx context.Context) (map[string]any, error) {
	all, err := r.client.HGetAll(ctx, r.Key()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis snapshot: %w", err)
	}
	out := make(map[string]any, len(all))
	for k, raw := range all {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("decode fact %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// Claim takes the squad token named token for owner, using SET NX PX. It
// reports false when another owner holds it. Claims expire after ttl.
func (r *Redis) Claim(ctx context.Context, token, owner string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.claimKey(token), owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis claim %q: %w", token, err)
	}
	return ok, nil
}

const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Release gives token back if owner still holds it.
func (r *Redis) Release(ctx context.Context, token, owner string) error {
	return r.client.Eval(ctx, releaseScript, []string{r.claimKey(token)}, owner).Err()
}

func (r *Redis) claimKey(token string) string {
	return r.prefix + "claim:" + r.name + ":" + token
}
