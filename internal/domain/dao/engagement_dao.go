package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// RatingAggregate is the result of aggregating approved reviews
type RatingAggregate struct {
	Average float64
	Count   int64
}

// ReviewDAO provides access to product reviews
type ReviewDAO interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByProduct(ctx context.Context, productID primitive.ObjectID, status entity.ReviewStatus, page, limit int) ([]*entity.Review, int64, error)
	FindAll(ctx context.Context, status entity.ReviewStatus, page, limit int) ([]*entity.Review, int64, error)

	// AggregateApproved computes the average rating and count over approved
	// reviews for the product.
	AggregateApproved(ctx context.Context, productID primitive.ObjectID) (*RatingAggregate, error)
}

// NotificationDAO provides access to in-app notifications
type NotificationDAO interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Notification, error)
	FindForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*entity.Notification, int64, error)
	FindForAdmin(ctx context.Context, page, limit int) ([]*entity.Notification, int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllReadForUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	MarkAllReadForAdmin(ctx context.Context) (int64, error)
	CountUnreadForUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountUnreadForAdmin(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
