// Package cache conexión a Redis y limitador de intentos de login.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/repairnotes-api/pkg/config"
)

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// LoginThrottle ventana fija por clave: INCR + EXPIRE en el primer intento.
type LoginThrottle struct {
	rdb    redis.Cmdable
	limit  int64
	window time.Duration
	prefix string
}

// NewLoginThrottle limit intentos por window para cada clave.
func NewLoginThrottle(rdb redis.Cmdable, limit int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{rdb: rdb, limit: int64(limit), window: window, prefix: "login:attempts:"}
}

// Allow registra un intento. Devuelve false y el tiempo restante cuando se supera el límite.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := t.prefix + key
	n, err := t.rdb.Incr(ctx, k).Result()
	if err != nil {
		return true, 0, fmt.Errorf("login throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.rdb.Expire(ctx, k, t.window).Err(); err != nil {
			return true, 0, fmt.Errorf("login throttle expire: %w", err)
		}
	}
	if n <= t.limit {
		return true, 0, nil
	}
	ttl, err := t.rdb.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		ttl = t.window
	}
	return false, ttl, nil
}
