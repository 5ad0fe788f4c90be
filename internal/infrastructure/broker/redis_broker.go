// Package broker раздаёт события дашборда между экземплярами через Redis Pub/Sub.
package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/complaints-dashboard/internal/logger"
	"github.com/ignatzorin/complaints-dashboard/internal/ws"
)

const DefaultChannel = "dashboard:events"

// Deliverer локальная доставка полученного кадра.
type Deliverer interface {
	Deliver(env ws.Envelope)
}

type RedisBroker struct {
	client  *redis.Client
	channel string
	local   Deliverer
}

func NewRedisBroker(client *redis.Client, channel string, local Deliverer) *RedisBroker {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroker{client: client, channel: channel, local: local}
}

// Connect разбирает REDIS_URL и проверяет соединение.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("broker: некорректный REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("broker: redis недоступен: %w", err)
	}
	return client, nil
}

// Relay реализует ws.Relay. Кадр вернётся и в этот экземпляр через Run.
func (b *RedisBroker) Relay(ctx context.Context, env ws.Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, raw).Err()
}

// Run слушает канал до отмены ctx.
func (b *RedisBroker) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("broker: не удалось подписаться на %s: %w", b.channel, err)
	}
	logger.Component("broker").WithField("channel", b.channel).Info("broker: подписка на события")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			env, err := Decode(msg.Payload)
			if err != nil {
				logger.Component("broker").WithError(err).Warn("broker: пропущено некорректное сообщение")
				continue
			}
			b.local.Deliver(env)
		}
	}
}

// Decode разбирает сообщение из канала.
func Decode(payload string) (ws.Envelope, error) {
	var env ws.Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return ws.Envelope{}, fmt.Errorf("broker: %w", err)
	}
	if len(env.Frame) == 0 {
		return ws.Envelope{}, fmt.Errorf("broker: пустой кадр")
	}
	return env, nil
}
