package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// notificationDAO implements dao.NotificationDAO using MongoDB.
type notificationDAO struct {
	*baseDAO[entity.Notification]
}

// NewNotificationDAO creates a MongoDB-backed NotificationDAO.
func NewNotificationDAO(db *mongo.Database) dao.NotificationDAO {
	return &notificationDAO{baseDAO: newBaseDAO[entity.Notification](db, CollNotifications)}
}

var notificationSort = bson.D{{Key: "created_at", Value: -1}}

func (d *notificationDAO) Create(ctx context.Context, notification *entity.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	return d.insertOne(ctx, notification)
}

func (d *notificationDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Notification, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *notificationDAO) FindForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*entity.Notification, int64, error) {
	return d.findPage(ctx, bson.M{"for_user": userID}, notificationSort, page, limit)
}

func (d *notificationDAO) FindForAdmin(ctx context.Context, page, limit int) ([]*entity.Notification, int64, error) {
	return d.findPage(ctx, bson.M{"for_admin": true}, notificationSort, page, limit)
}

func (d *notificationDAO) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_read": true}})
}

func (d *notificationDAO) MarkAllReadForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return d.updateMany(ctx,
		bson.M{"for_user": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
}

func (d *notificationDAO) MarkAllReadForAdmin(ctx context.Context) (int64, error) {
	return d.updateMany(ctx,
		bson.M{"for_admin": true, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
}

func (d *notificationDAO) CountUnreadForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return d.count(ctx, bson.M{"for_user": userID, "is_read": false})
}

func (d *notificationDAO) CountUnreadForAdmin(ctx context.Context) (int64, error) {
	return d.count(ctx, bson.M{"for_admin": true, "is_read": false})
}

func (d *notificationDAO) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return d.deleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
}
