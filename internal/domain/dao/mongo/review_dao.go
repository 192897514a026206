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

// reviewDAO implements dao.ReviewDAO using MongoDB.
type reviewDAO struct {
	*baseDAO[entity.Review]
}

// NewReviewDAO creates a MongoDB-backed ReviewDAO.
func NewReviewDAO(db *mongo.Database) dao.ReviewDAO {
	return &reviewDAO{baseDAO: newBaseDAO[entity.Review](db, CollReviews)}
}

func (d *reviewDAO) Create(ctx context.Context, review *entity.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	return d.insertOne(ctx, review)
}

func (d *reviewDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Review, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *reviewDAO) FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Review, error) {
	return d.findOne(ctx, bson.M{"user": userID, "product": productID})
}

func (d *reviewDAO) Update(ctx context.Context, review *entity.Review) error {
	review.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": review.ID}, bson.M{"$set": review})
}

func (d *reviewDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	return d.deleteOne(ctx, bson.M{"_id": id})
}

func (d *reviewDAO) FindByProduct(ctx context.Context, productID primitive.ObjectID, status entity.ReviewStatus, page, limit int) ([]*entity.Review, int64, error) {
	query := bson.M{"product": productID}
	if status != "" {
		query["status"] = status
	}
	return d.findPage(ctx, query, bson.D{{Key: "created_at", Value: -1}}, page, limit)
}

func (d *reviewDAO) FindAll(ctx context.Context, status entity.ReviewStatus, page, limit int) ([]*entity.Review, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	return d.findPage(ctx, query, bson.D{{Key: "created_at", Value: -1}}, page, limit)
}

func (d *reviewDAO) AggregateApproved(ctx context.Context, productID primitive.ObjectID) (*dao.RatingAggregate, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"product": productID,
			"status":  entity.ReviewApproved,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	var rows []struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}
	if err := d.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &dao.RatingAggregate{}, nil
	}
	return &dao.RatingAggregate{Average: rows[0].Average, Count: rows[0].Count}, nil
}
