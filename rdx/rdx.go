package rdx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the redis connection used for token storage, the cached
// public trip list and the trip-events pub/sub channel.
type Cache struct {
	Conn *redis.Client
}

func New(addr string) (*Cache, error) {
	conn := redis.NewClient(&redis.Options{Addr: addr})
	if err := conn.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Cache{Conn: conn}, nil
}

func (c *Cache) Close() error {
	return c.Conn.Close()
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Conn.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.Conn.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	return c.Conn.Del(ctx, keys...).Err()
}

func (c *Cache) HSet(ctx context.Context, key, field, value string) error {
	return c.Conn.HSet(ctx, key, field, value).Err()
}

func (c *Cache) HDel(ctx context.Context, key, field string) error {
	return c.Conn.HDel(ctx, key, field).Err()
}

func (c *Cache) Publish(ctx context.Context, channel string, payload []byte) error {
	return c.Conn.Publish(ctx, channel, payload).Err()
}

func (c *Cache) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return c.Conn.Subscribe(ctx, channel)
}
