package events

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

func TestRedisOutbox_PublishSwallowsBrokerFailure(t *testing.T) {
	// Nothing listens on this address. Publish must stamp the event and
	// return nil anyway; delivery is best effort.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	outbox := NewRedisOutbox(client, zap.NewNop())

	event := &Event{
		Type:    entity.NotifyOrderPlaced,
		Title:   "New order",
		Message: "Order ORD-20260101-00001 placed",
	}

	if err := outbox.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if event.ID == "" {
		t.Error("Publish() should stamp an event id")
	}
	if event.CreatedAt.IsZero() {
		t.Error("Publish() should stamp CreatedAt")
	}
}

func TestRedisOutbox_PublishKeepsExistingStamps(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	outbox := NewRedisOutbox(client, zap.NewNop())

	event := &Event{ID: "fixed-id", Type: entity.NotifyOrderPlaced}
	if err := outbox.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if event.ID != "fixed-id" {
		t.Errorf("ID = %q, want fixed-id", event.ID)
	}
}
