//go:build !integration

package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// fakeClient is an in-memory RedisClient with coarse TTL semantics, enough
// for the limiter and OTP store paths.
type fakeClient struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
	now     func() time.Time

	incrErr   error
	expireErr error
}

var _ RedisClient = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		values:  map[string]string{},
		expires: map[string]time.Time{},
		now:     time.Now,
	}
}

func (f *fakeClient) expired(key string) bool {
	if exp, ok := f.expires[key]; ok && f.now().After(exp) {
		delete(f.values, key)
		delete(f.expires, key)
		return true
	}
	return false
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case string:
		f.values[key] = v
	case []byte:
		f.values[key] = string(v)
	default:
		f.values[key] = fmt.Sprint(v)
	}
	if expiration > 0 {
		f.expires[key] = f.now().Add(expiration)
	} else {
		delete(f.expires, key)
	}
	return nil
}

func (f *fakeClient) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.expired(key) {
		return "", goredis.Nil
	}
	v, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeClient) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.expired(key)
	var n int64
	fmt.Sscan(f.values[key], &n)
	n++
	f.values[key] = fmt.Sprint(n)
	return n, nil
}

func (f *fakeClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.expireErr != nil {
		return f.expireErr
	}
	f.expires[key] = f.now().Add(expiration)
	return nil
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.values, k)
		delete(f.expires, k)
	}
	return nil
}

func (f *fakeClient) Close() error { return nil }
