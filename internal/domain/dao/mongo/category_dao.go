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

// categoryDAO implements dao.CategoryDAO using MongoDB.
type categoryDAO struct {
	*baseDAO[entity.Category]
}

// NewCategoryDAO creates a MongoDB-backed CategoryDAO.
func NewCategoryDAO(db *mongo.Database) dao.CategoryDAO {
	return &categoryDAO{baseDAO: newBaseDAO[entity.Category](db, CollCategories)}
}

var categorySort = bson.D{{Key: "sort_order", Value: 1}, {Key: "name", Value: 1}}

func (d *categoryDAO) Create(ctx context.Context, category *entity.Category) error {
	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	if category.Ancestors == nil {
		category.Ancestors = []primitive.ObjectID{}
	}
	return d.insertOne(ctx, category)
}

func (d *categoryDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *categoryDAO) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return d.findOne(ctx, bson.M{"slug": slug})
}

func (d *categoryDAO) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return d.existsBy(ctx, bson.M{"slug": slug})
}

func (d *categoryDAO) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": category.ID}, bson.M{"$set": category})
}

func (d *categoryDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	return d.deleteOne(ctx, bson.M{"_id": id})
}

func (d *categoryDAO) FindAll(ctx context.Context, page, limit int) ([]*entity.Category, int64, error) {
	return d.findPage(ctx, bson.M{}, categorySort, page, limit)
}

func (d *categoryDAO) FindActive(ctx context.Context) ([]*entity.Category, error) {
	return d.findMany(ctx, bson.M{"is_active": true}, options.Find().SetSort(categorySort))
}

func (d *categoryDAO) FindMenu(ctx context.Context) ([]*entity.Category, error) {
	return d.findMany(ctx,
		bson.M{"is_active": true, "show_in_menu": true},
		options.Find().SetSort(categorySort))
}

func (d *categoryDAO) CountChildren(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return d.count(ctx, bson.M{"parent_category": id})
}
