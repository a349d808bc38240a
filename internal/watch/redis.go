package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// channelPrefix namespaces broker traffic on a shared Redis instance.
const channelPrefix = "claritycareer:watch:"

// RedisBroker is a Broker backed by Redis pub/sub so events reach
// subscribers on every server instance.
type RedisBroker struct {
	rdb *redis.Client
}

// NewRedisBroker creates a broker on an existing Redis client.
func NewRedisBroker(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{rdb: rdb}
}

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// Publish sends ev to the topic's Redis channel.
func (b *RedisBroker) Publish(ctx context.Context, topic string, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.rdb.Publish(ctx, channelPrefix+topic, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Subscribe attaches to the topic's Redis channel. Events arrive until the
// release function runs or ctx is cancelled.
func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (<-chan Event, func(), error) {
	sub := b.rdb.Subscribe(ctx, channelPrefix+topic)

	// Wait for the subscription to be confirmed so no event published
	// after Subscribe returns is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	ch := make(chan Event, subscriberBuffer)
	go func() {
		defer close(ch)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[watch] Dropping malformed event on %s: %v", topic, err)
				continue
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	release := func() { _ = sub.Close() }
	return ch, release, nil
}
