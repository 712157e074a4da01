package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/events"
	"github.com/girmesh03/Task-Manager-V19/internal/service"
)

// RedisNotificationPublisher pushes persisted notifications onto a Redis
// pub/sub channel for realtime delivery. Subscribers (websocket gateways,
// mobile push bridges) consume the channel independently.
type RedisNotificationPublisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisNotificationPublisher builds the publisher.
func NewRedisNotificationPublisher(client *redis.Client, channel string, logger *zap.Logger) *RedisNotificationPublisher {
	return &RedisNotificationPublisher{client: client, channel: channel, logger: logger}
}

// Publish serializes the notification and publishes it. Delivery is
// best-effort; the DB row remains the durable record.
func (p *RedisNotificationPublisher) Publish(ctx context.Context, notification *domain.Notification) error {
	if p.client == nil {
		return nil
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// StartNotificationWorker registers the notification service's event handlers
// on the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher) {
	if notificationService == nil || dispatcher == nil {
		return
	}
	notificationService.SubscribeTo(dispatcher)
}
