package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the redis sink connection settings
type RedisConfig struct {
	Addr     string // host:port
	Password string // optional
	DB       int
	Channel  string // PUBLISH target
}

// RedisSink publishes records on a single channel
type RedisSink struct {
	client  *redis.Client
	channel string
}

// NewRedisSink creates the client; the connection is established on first publish
func NewRedisSink(cfg RedisConfig) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     2,
	})
	return &RedisSink{client: client, channel: cfg.Channel}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Deliver(ctx context.Context, rec Record) error {
	payload, err := rec.Marshal()
	if err != nil {
		return fmt.Errorf("redis: encode record: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis: publish %s: %w", s.channel, err)
	}
	return nil
}

// Close releases the connection pool
func (s *RedisSink) Close() error {
	return s.client.Close()
}
