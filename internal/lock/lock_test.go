package lock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis keeps string keys in memory and runs unlockScript's
// compare-and-delete for EVALSHA.
type fakeRedis struct {
	redis.Scripter
	values map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	if f.values[keys[0]] != fmt.Sprint(args[0]) {
		return redis.NewCmdResult(int64(0), nil)
	}
	delete(f.values, keys[0])
	return redis.NewCmdResult(int64(1), nil)
}

func (f *fakeRedis) Close() error { return nil }

func newTestRedisLock(f *fakeRedis) *RedisLock {
	r := newRedisLock(f)
	n := 0
	r.newToken = func() string {
		n++
		return fmt.Sprintf("token-%d", n)
	}
	return r
}

func TestMemoryLock(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLock()

	ok, err := l.Lock(ctx, "availability:tutor-1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first Lock() = %v, %v, want true", ok, err)
	}

	ok, _ = l.Lock(ctx, "availability:tutor-1", time.Minute)
	if ok {
		t.Error("second Lock() on a held key should fail")
	}

	ok, _ = l.Lock(ctx, "availability:tutor-2", time.Minute)
	if !ok {
		t.Error("Lock() on a different key should succeed")
	}

	if err := l.Unlock(ctx, "availability:tutor-1"); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	ok, _ = l.Lock(ctx, "availability:tutor-1", time.Minute)
	if !ok {
		t.Error("Lock() after Unlock() should succeed")
	}
}

func TestMemoryLockExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLock()
	l.clock = func() time.Time { return now }

	if ok, _ := l.Lock(ctx, "k", 10*time.Second); !ok {
		t.Fatal("Lock() should succeed")
	}

	now = now.Add(5 * time.Second)
	if ok, _ := l.Lock(ctx, "k", 10*time.Second); ok {
		t.Error("lock should still be held before ttl")
	}

	now = now.Add(6 * time.Second)
	if ok, _ := l.Lock(ctx, "k", 10*time.Second); !ok {
		t.Error("expired lock should be reclaimed")
	}
}

func TestRedisLockStoresToken(t *testing.T) {
	ctx := context.Background()
	f := newFakeRedis()
	r := newTestRedisLock(f)

	if ok, err := r.Lock(ctx, "availability:tutor-1", time.Minute); err != nil || !ok {
		t.Fatalf("Lock() = %v, %v, want true", ok, err)
	}
	if got := f.values["lock:availability:tutor-1"]; got != "token-1" {
		t.Errorf("stored value = %q, want token-1", got)
	}
	if ok, _ := r.Lock(ctx, "availability:tutor-1", time.Minute); ok {
		t.Error("second Lock() on a held key should fail")
	}

	if err := r.Unlock(ctx, "availability:tutor-1"); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	if _, ok := f.values["lock:availability:tutor-1"]; ok {
		t.Error("expected Unlock() to delete our key")
	}
}

func TestRedisLockUnlockKeepsOtherHolder(t *testing.T) {
	ctx := context.Background()
	f := newFakeRedis()
	r := newTestRedisLock(f)

	if ok, _ := r.Lock(ctx, "availability:tutor-1", time.Minute); !ok {
		t.Fatal("Lock() should succeed")
	}
	// Our ttl ran out and another process took the key.
	f.values["lock:availability:tutor-1"] = "someone-else"

	if err := r.Unlock(ctx, "availability:tutor-1"); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	if got := f.values["lock:availability:tutor-1"]; got != "someone-else" {
		t.Errorf("other holder's lock = %q, want it untouched", got)
	}
}

func TestRedisLockUnlockWithoutLock(t *testing.T) {
	ctx := context.Background()
	f := newFakeRedis()
	f.values["lock:k"] = "someone-else"
	r := newTestRedisLock(f)

	if err := r.Unlock(ctx, "k"); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	if got := f.values["lock:k"]; got != "someone-else" {
		t.Errorf("lock:k = %q, want it untouched", got)
	}
}

func TestLockKey(t *testing.T) {
	if got := lockKey("availability:p1"); got != "lock:availability:p1" {
		t.Errorf("lockKey() = %q", got)
	}
}
