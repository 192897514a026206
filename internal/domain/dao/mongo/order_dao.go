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

// orderDAO implements dao.OrderDAO using MongoDB.
type orderDAO struct {
	*baseDAO[entity.Order]
}

// NewOrderDAO creates a MongoDB-backed OrderDAO.
func NewOrderDAO(db *mongo.Database) dao.OrderDAO {
	return &orderDAO{baseDAO: newBaseDAO[entity.Order](db, CollOrders)}
}

func (d *orderDAO) Create(ctx context.Context, order *entity.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	if order.Timeline == nil {
		order.Timeline = []entity.TimelineEntry{}
	}
	return d.insertOne(ctx, order)
}

func (d *orderDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *orderDAO) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return d.findOne(ctx, bson.M{"order_number": orderNumber})
}

func (d *orderDAO) Update(ctx context.Context, order *entity.Order) error {
	order.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": order})
}

func (d *orderDAO) FindAll(ctx context.Context, filter dao.OrderFilter, page, limit int) ([]*entity.Order, int64, error) {
	query := bson.M{}
	if filter.User != nil {
		query["user"] = *filter.User
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		query["payment_status"] = filter.PaymentStatus
	}
	if filter.OrderNumber != "" {
		query["order_number"] = filter.OrderNumber
	}
	if filter.From != nil || filter.To != nil {
		created := bson.M{}
		if filter.From != nil {
			created["$gte"] = *filter.From
		}
		if filter.To != nil {
			created["$lte"] = *filter.To
		}
		query["created_at"] = created
	}
	return d.findPage(ctx, query, bson.D{{Key: "created_at", Value: -1}}, page, limit)
}

func (d *orderDAO) HasDeliveredProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	return d.existsBy(ctx, bson.M{
		"user":          userID,
		"status":        entity.OrderStatusDelivered,
		"items.product": productID,
	})
}
