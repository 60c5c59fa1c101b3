package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis Streams publisher settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// MaxLen trims each stream to roughly this many entries. Zero disables trimming.
	MaxLen int64
}

// Publisher appends events to Redis Streams, one stream per topic.
// Each entry carries the partition key and the JSON payload.
type Publisher struct {
	client *redis.Client
	maxLen int64
}

// New creates a publisher. It does not contact Redis; use Ping to check reachability.
func New(cfg Config) (*Publisher, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse events redis url: %w", err)
	}
	return NewWithClient(redis.NewClient(opts), cfg.MaxLen), nil
}

// NewWithClient creates a publisher with an existing client (for testing)
func NewWithClient(client *redis.Client, maxLen int64) *Publisher {
	return &Publisher{client: client, maxLen: maxLen}
}

// Publish appends an entry to the topic stream
func (p *Publisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	args := &redis.XAddArgs{
		Stream: topic,
		Values: []any{"key", key, "payload", payload},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", topic, err)
	}
	return nil
}

// Ping checks that Redis is reachable
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}
