package infrastructure

import (
	"context"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/redis/go-redis/v9"
)

// KeydbClient is a thin wrapper around go-redis, used by the Orders service
// purely as a fast-path dedup guard in front of C5's transactional
// idempotence check (see internal/orders/consumer). It is never a source of
// truth: a cache outage degrades to transaction-only idempotence.
type KeydbClient struct {
	client *redis.Client
	cfg    config.CacheConfig
}

func NewKeyDBClient(cfg config.CacheConfig, _ Logger) *KeydbClient {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
		MaxRetries:   cfg.MaxRetries,
	})

	return &KeydbClient{client: client, cfg: cfg}
}

func (c *KeydbClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// SeenBefore atomically marks key as seen; it reports true when the key was
// already set (a repeat) and false when this call set it first. TTL defaults
// to cfg.DefaultExpiry when ttl is zero.
func (c *KeydbClient) SeenBefore(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl == 0 {
		ttl = c.cfg.DefaultExpiry
	}

	ok, err := c.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, err
	}

	return !ok, nil
}

func (c *KeydbClient) Close() error {
	return c.client.Close()
}
