// Package lock provides short-lived exclusive locks keyed by name.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned by callers when a lock is already held.
var ErrLocked = errors.New("resource is locked")

// Locker acquires and releases named locks.
type Locker interface {
	// Lock tries to take key for ttl. It returns false if someone else holds it.
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// unlockScript deletes KEYS[1] only while it still holds the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Close() error
}

// RedisLock implements Locker with SET NX on a Redis server. Each acquire
// stores a fresh token so a release never deletes a lock taken by someone
// else after ours expired.
type RedisLock struct {
	client redisClient

	mu       sync.Mutex
	tokens   map[string]string
	newToken func() string
}

// NewRedisLock connects to redisAddr and verifies the connection.
func NewRedisLock(redisAddr string) (*RedisLock, error) {
	const op = "lock.NewRedisLock"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return newRedisLock(client), nil
}

func newRedisLock(client redisClient) *RedisLock {
	return &RedisLock{
		client:   client,
		tokens:   make(map[string]string),
		newToken: uuid.NewString,
	}
}

// Lock takes key for ttl.
func (r *RedisLock) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	const op = "lock.RedisLock.Lock"

	token := r.newToken()
	result, err := r.client.SetNX(ctx, lockKey(key), token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if result {
		r.mu.Lock()
		r.tokens[key] = token
		r.mu.Unlock()
	}

	return result, nil
}

// Unlock releases key if this locker still owns it. Keys it never took, or
// that expired and were taken by another holder, are left alone.
func (r *RedisLock) Unlock(ctx context.Context, key string) error {
	const op = "lock.RedisLock.Unlock"

	r.mu.Lock()
	token, ok := r.tokens[key]
	delete(r.tokens, key)
	r.mu.Unlock()
	if !ok {
		return nil
	}

	if err := unlockScript.Run(ctx, r.client, []string{lockKey(key)}, token).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close closes the Redis client.
func (r *RedisLock) Close() error {
	return r.client.Close()
}

// MemoryLock implements Locker in process. Used when no Redis address is configured.
type MemoryLock struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

// NewMemoryLock creates an in-process locker.
func NewMemoryLock() *MemoryLock {
	return &MemoryLock{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

// Lock takes key for ttl. Expired locks are reclaimed.
func (m *MemoryLock) Lock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	if expires, ok := m.held[lockKey(key)]; ok && now.Before(expires) {
		return false, nil
	}
	m.held[lockKey(key)] = now.Add(ttl)
	return true, nil
}

// Unlock releases key.
func (m *MemoryLock) Unlock(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.held, lockKey(key))
	return nil
}

// Close is a no-op.
func (m *MemoryLock) Close() error {
	return nil
}

func lockKey(key string) string {
	return fmt.Sprintf("lock:%s", key)
}
