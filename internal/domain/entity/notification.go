package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType identifies what kind of event a notification reports
type NotificationType string

const (
	NotifyOrderPlaced   NotificationType = "order_placed"
	NotifyOrderStatus   NotificationType = "order_status"
	NotifyPaymentStatus NotificationType = "payment_status"
	NotifyLowStock      NotificationType = "low_stock"
	NotifyNewReview     NotificationType = "new_review"
	NotifySystem        NotificationType = "system"
)

// NotificationRetentionDays is how long notifications are kept before the
// scheduled sweep removes them.
const NotificationRetentionDays = 30

// Notification is a persisted in-app notification, addressed either to a
// specific user or to the admin feed.
type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Type      NotificationType    `bson:"type" json:"type"`
	Title     string              `bson:"title" json:"title"`
	Message   string              `bson:"message" json:"message"`
	ForAdmin  bool                `bson:"for_admin" json:"for_admin"`
	ForUser   *primitive.ObjectID `bson:"for_user,omitempty" json:"for_user,omitempty"`
	Order     *primitive.ObjectID `bson:"order,omitempty" json:"order,omitempty"`
	Product   *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	Review    *primitive.ObjectID `bson:"review,omitempty" json:"review,omitempty"`
	IsRead    bool                `bson:"is_read" json:"is_read"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}
