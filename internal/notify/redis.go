package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const channelPrefix = "hydration:reminders:"

// Channel is the pub/sub channel a user's notifications are published on.
func Channel(userID int) string {
	return fmt.Sprintf("%s%d", channelPrefix, userID)
}

// RedisPublisher publishes notifications on a per-user Redis channel so that
// other processes can forward them.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(addr, password string, db int) *RedisPublisher {
	return &RedisPublisher{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Notify reports ErrUndelivered when no subscriber received the message.
func (p *RedisPublisher) Notify(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	receivers, err := p.client.Publish(ctx, Channel(n.UserID), payload).Result()
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	if receivers == 0 {
		return ErrUndelivered
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
