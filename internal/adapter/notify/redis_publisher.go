package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/inekruz/MoneyNote/internal/domain"
	"github.com/inekruz/MoneyNote/internal/logger"
)

// RedisPublisher pushes approved-loan notifications onto a Redis channel
// consumed by the push/email delivery worker. Delivery is best-effort; the
// caller logs and ignores failures.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(addr string, channel string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &RedisPublisher{client: client, channel: channel}
}

type pushMessage struct {
	Login       string `json:"login"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (p *RedisPublisher) Publish(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(pushMessage{
		Login:       notification.Login,
		Title:       notification.Title,
		Description: notification.Description,
	})
	if err != nil {
		return fmt.Errorf("marshal push message: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish push message: %w", err)
	}

	logger.Info("redis publisher push message sent", logger.Fields{
		"login":   notification.Login,
		"channel": p.channel,
	})

	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
