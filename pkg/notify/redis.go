package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultChannelPrefix prefixes Redis pub/sub channel names.
const DefaultChannelPrefix = "notify"

// RedisPublisher publishes messages on Redis pub/sub, one channel per topic.
type RedisPublisher struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisPublisher creates a publisher over the given Redis client.
func NewRedisPublisher(client redis.UniversalClient, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisPublisher{client: client, prefix: prefix}
}

func (p *RedisPublisher) Publish(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	channel := p.prefix + ":" + msg.Topic
	return p.client.Publish(ctx, channel, data).Err()
}
