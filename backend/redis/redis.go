package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	be "github.com/unkn0wn-root/nscache/backend"
)

var ErrNilClient = errors.New("redis backend: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ be.Backend = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this backend exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// Counter scripts mirror memcached semantics: a missing key is a miss, never
// an implicit create at zero (plain INCRBY would create it).
var (
	incrScript = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then return false end
return redis.call("INCRBY", KEYS[1], ARGV[1])`)

	decrScript = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then return false end
return redis.call("DECRBY", KEYS[1], ARGV[1])`)
)

func (b *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := b.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return v, true, nil
}

func (b *Redis) Set(ctx context.Context, key string, value []byte) error {
	// No per-entry TTL in the backend contract; entries live until a
	// generation bump or an explicit delete.
	return b.rdb.Set(ctx, key, value, 0).Err()
}

func (b *Redis) Delete(ctx context.Context, key string) (bool, error) {
	n, err := b.rdb.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *Redis) Incr(ctx context.Context, key string, delta int64) (int64, bool, error) {
	return b.runCounter(ctx, incrScript, key, delta)
}

func (b *Redis) Decr(ctx context.Context, key string, delta int64) (int64, bool, error) {
	return b.runCounter(ctx, decrScript, key, delta)
}

func (b *Redis) runCounter(ctx context.Context, s *goredis.Script, key string, delta int64) (int64, bool, error) {
	res, err := s.Run(ctx, b.rdb, []string{key}, delta).Result()
	if err == goredis.Nil {
		return 0, false, nil // Lua false => nil reply => miss
	}
	if err != nil {
		return 0, false, err
	}
	n, ok := res.(int64)
	if !ok {
		return 0, false, errors.New("redis backend: unexpected counter reply type")
	}
	return n, true, nil
}

// Quit releases the underlying redis client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (b *Redis) Quit(context.Context) error {
	if b.closeClient {
		if err := b.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
