package seatingcharts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serializes writers of one chart across API and worker processes.
type Locker interface {
	// Lock blocks until key is held or the wait runs out. The returned
	// function releases the lock.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ErrLockTimeout means another writer held the chart for the whole wait.
var ErrLockTimeout = errors.New("timed out waiting for seating chart lock")

// luaCompareAndDelete releases the lock only if we still own it, so a
// writer whose lock expired cannot free someone else's.
const luaCompareAndDelete = `
-- KEYS[1] = lock key
-- ARGV[1] = owner token
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

var compareAndDeleteScript = redis.NewScript(luaCompareAndDelete)

// RedisLocker is a single-instance Redis lock: SET NX PX to take it, a
// compare-and-delete script to give it back.
type RedisLocker struct {
	redis    *redis.Client
	ttl      time.Duration
	wait     time.Duration
	interval time.Duration
	newToken func() string
}

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		redis:    client,
		ttl:      ttl,
		wait:     wait,
		interval: 25 * time.Millisecond,
		newToken: uuid.NewString,
	}
}

// PreloadScripts loads the release script so the first unlock skips the
// EVAL fallback.
func (l *RedisLocker) PreloadScripts(ctx context.Context) error {
	if err := compareAndDeleteScript.Load(ctx, l.redis).Err(); err != nil {
		return fmt.Errorf("failed to load lock release script: %w", err)
	}
	return nil
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := l.newToken()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return func() {
				// The caller's context may already be cancelled.
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = compareAndDeleteScript.Run(releaseCtx, l.redis, []string{key}, token).Err()
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.interval):
		}
	}
}

type nopLocker struct{}

// NewNopLocker returns a Locker that never blocks. The version check on
// chart writes still prevents lost updates without it.
func NewNopLocker() Locker {
	return nopLocker{}
}

func (nopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
