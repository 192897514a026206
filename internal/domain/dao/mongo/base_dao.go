// Package mongo provides the MongoDB implementations of the DAO interfaces.
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, one per entity.
const (
	CollUsers         = "users"
	CollRefreshTokens = "refresh_tokens"
	CollCategories    = "categories"
	CollProducts      = "products"
	CollCarts         = "carts"
	CollWishlists     = "wishlists"
	CollOrders        = "orders"
	CollPayments      = "payments"
	CollReviews       = "reviews"
	CollCoupons       = "coupons"
	CollShippingZones = "shipping_zones"
	CollShippingRates = "shipping_rates"
	CollShipments     = "shipments"
	CollNotifications = "notifications"
)

// baseDAO provides common MongoDB operations shared by all entity DAOs.
type baseDAO[T any] struct {
	collection *mongo.Collection
}

func newBaseDAO[T any](db *mongo.Database, collectionName string) *baseDAO[T] {
	return &baseDAO[T]{collection: db.Collection(collectionName)}
}

// notDeletedFilter excludes soft-deleted documents.
func notDeletedFilter() bson.M {
	return bson.M{"deleted_at": nil}
}

// withNotDeleted adds the not-deleted condition to an existing filter.
func withNotDeleted(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

func (d *baseDAO[T]) count(ctx context.Context, filter bson.M) (int64, error) {
	return d.collection.CountDocuments(ctx, filter)
}

func (d *baseDAO[T]) existsBy(ctx context.Context, filter bson.M) (bool, error) {
	count, err := d.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return count > 0, err
}

// findOne decodes a single document; mongo.ErrNoDocuments maps to (nil, nil).
func (d *baseDAO[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := d.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *baseDAO[T]) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	cursor, err := d.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// findPage runs a count plus a skip/limit find for paginated listings.
func (d *baseDAO[T]) findPage(ctx context.Context, filter bson.M, sort bson.D, page, limit int) ([]*T, int64, error) {
	total, err := d.count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(sort)

	docs, err := d.findMany(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (d *baseDAO[T]) insertOne(ctx context.Context, doc any) error {
	_, err := d.collection.InsertOne(ctx, doc)
	return err
}

func (d *baseDAO[T]) updateOne(ctx context.Context, filter bson.M, update bson.M) error {
	_, err := d.collection.UpdateOne(ctx, filter, update)
	return err
}

func (d *baseDAO[T]) updateMany(ctx context.Context, filter bson.M, update bson.M) (int64, error) {
	res, err := d.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (d *baseDAO[T]) deleteOne(ctx context.Context, filter bson.M) error {
	_, err := d.collection.DeleteOne(ctx, filter)
	return err
}

func (d *baseDAO[T]) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := d.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// aggregate runs a pipeline and decodes all results into out (a *[]T-like).
func (d *baseDAO[T]) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := d.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
