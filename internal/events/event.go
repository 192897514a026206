package events

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// Event is one domain event flowing through the outbox. Events become
// notifications and websocket pushes; losing one degrades to a log line,
// never to a failed request.
type Event struct {
	ID        string                  `json:"id"`
	Type      entity.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	ForAdmin  bool                    `json:"for_admin"`
	ForUser   *primitive.ObjectID     `json:"for_user,omitempty"`
	Order     *primitive.ObjectID     `json:"order,omitempty"`
	Product   *primitive.ObjectID     `json:"product,omitempty"`
	Review    *primitive.ObjectID     `json:"review,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// Publisher enqueues events for asynchronous delivery.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// Handler consumes events on the dispatcher side.
type Handler interface {
	Handle(ctx context.Context, event *Event) error
}
