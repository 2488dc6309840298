package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/cfg"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/jitter"
	r "github.com/redis/go-redis/v9"
)

const (
	redisReadyBase    = 200 * time.Millisecond
	redisReadyCeiling = 2 * time.Second
)

// RedisClient обслуживает кэш карточек товаров.
type RedisClient struct {
	Client *r.Client
	addr   string
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	return &RedisClient{
		Client: r.NewClient(&r.Options{
			Addr:         cfg.Addr,
			Username:     cfg.User,
			Password:     cfg.Password,
			DB:           cfg.DB,
			MaxRetries:   cfg.MaxRetries,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		}),
		addr: cfg.Addr,
	}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("redis %s: %w", c.addr, err))
	}

	return nil
}

// WaitReady пингует Redis до attempts раз с экспоненциальной паузой.
// Нужен при старте рядом с контейнером кэша, который поднимается дольше сервиса.
func (c *RedisClient) WaitReady(ctx context.Context, attempts int) error {
	attempts = max(attempts, 1)

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = c.Ping(ctx); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return e.Wrap(whereami.WhereAmI(), ctx.Err())
		case <-time.After(jitter.ExponentialBackoff(redisReadyBase, redisReadyCeiling, attempt, jitter.DefaultJitter)):
		}
	}

	return err
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}
