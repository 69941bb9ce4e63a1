package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implementa sólo INCR, EXPIRE y TTL; el resto de redis.Cmdable queda sin implementar.
type fakeRedis struct {
	redis.Cmdable
	counts  map[string]int64
	expires map[string]time.Duration
	failing bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.failing {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, d time.Duration) *redis.BoolCmd {
	f.expires[key] = d
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) TTL(_ context.Context, key string) *redis.DurationCmd {
	d, ok := f.expires[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(d-time.Second, nil)
}

func TestLoginThrottle_BloqueaTrasElLimite(t *testing.T) {
	rdb := newFakeRedis()
	th := NewLoginThrottle(rdb, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := th.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, retry, err := th.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 59*time.Second, retry)
	assert.Equal(t, time.Minute, rdb.expires["login:attempts:10.0.0.1"], "EXPIRE sólo en el primer intento")

	ok, _, err = th.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "cada IP tiene su propio contador")
}

func TestLoginThrottle_ErrorDeRedisDejaPasar(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failing = true
	th := NewLoginThrottle(rdb, 1, time.Minute)

	ok, _, err := th.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
	assert.True(t, ok)
}
