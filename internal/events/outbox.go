package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const queueKey = "velora:events:queue"

// RedisOutbox pushes events onto a Redis list consumed by the dispatcher.
type RedisOutbox struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisOutbox creates a Redis-backed event publisher.
func NewRedisOutbox(client *redis.Client, logger *zap.Logger) *RedisOutbox {
	return &RedisOutbox{client: client, logger: logger}
}

// Publish enqueues the event. It stamps ID and CreatedAt when unset. A
// Redis failure is logged and swallowed so the calling request still
// succeeds; delivery is at most once.
func (o *RedisOutbox) Publish(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	if err := o.client.LPush(ctx, queueKey, data).Err(); err != nil {
		o.logger.Warn("event publish failed, dropping event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
	return nil
}
