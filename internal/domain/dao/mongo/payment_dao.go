package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// paymentDAO implements dao.PaymentDAO using MongoDB.
type paymentDAO struct {
	*baseDAO[entity.Payment]
}

// NewPaymentDAO creates a MongoDB-backed PaymentDAO.
func NewPaymentDAO(db *mongo.Database) dao.PaymentDAO {
	return &paymentDAO{baseDAO: newBaseDAO[entity.Payment](db, CollPayments)}
}

func (d *paymentDAO) Create(ctx context.Context, payment *entity.Payment) error {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	return d.insertOne(ctx, payment)
}

func (d *paymentDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Payment, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *paymentDAO) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	return d.findOne(ctx, bson.M{"transaction_id": transactionID})
}

func (d *paymentDAO) FindByOrder(ctx context.Context, orderID primitive.ObjectID) ([]*entity.Payment, error) {
	return d.findMany(ctx, bson.M{"order": orderID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (d *paymentDAO) Update(ctx context.Context, payment *entity.Payment) error {
	payment.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": payment.ID}, bson.M{"$set": payment})
}

func (d *paymentDAO) FindAll(ctx context.Context, status entity.PaymentStatus, page, limit int) ([]*entity.Payment, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	return d.findPage(ctx, query, bson.D{{Key: "created_at", Value: -1}}, page, limit)
}

func (d *paymentDAO) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	return d.updateMany(ctx, bson.M{
		"status":     entity.PaymentPending,
		"created_at": bson.M{"$lt": cutoff},
	}, bson.M{
		"$set": bson.M{
			"status":         entity.PaymentFailed,
			"failure_reason": "payment window expired",
			"updated_at":     time.Now(),
		},
	})
}
