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
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

// productDAO implements dao.ProductDAO using MongoDB.
type productDAO struct {
	*baseDAO[entity.Product]
}

// NewProductDAO creates a MongoDB-backed ProductDAO.
func NewProductDAO(db *mongo.Database) dao.ProductDAO {
	return &productDAO{baseDAO: newBaseDAO[entity.Product](db, CollProducts)}
}

var productSorts = map[dao.ProductSort]bson.D{
	dao.SortNewest:      {{Key: "created_at", Value: -1}},
	dao.SortOldest:      {{Key: "created_at", Value: 1}},
	dao.SortPriceAsc:    {{Key: "price", Value: 1}},
	dao.SortPriceDesc:   {{Key: "price", Value: -1}},
	dao.SortNameAsc:     {{Key: "name", Value: 1}},
	dao.SortNameDesc:    {{Key: "name", Value: -1}},
	dao.SortBestSelling: {{Key: "sales_count", Value: -1}},
	dao.SortTopRated:    {{Key: "rating", Value: -1}, {Key: "review_count", Value: -1}},
}

func (d *productDAO) Create(ctx context.Context, product *entity.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}
	if product.Variants == nil {
		product.Variants = []entity.Variant{}
	}
	return d.insertOne(ctx, product)
}

func (d *productDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	return d.findOne(ctx, withNotDeleted(bson.M{"_id": id}))
}

func (d *productDAO) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return d.findOne(ctx, withNotDeleted(bson.M{"slug": slug}))
}

func (d *productDAO) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return d.existsBy(ctx, withNotDeleted(bson.M{"slug": slug}))
}

func (d *productDAO) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": product})
}

// Delete performs a soft delete.
func (d *productDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"deleted_at": now, "updated_at": now},
	})
}

func (d *productDAO) Search(ctx context.Context, filter dao.ProductFilter, sort dao.ProductSort, page, limit int) ([]*entity.Product, int64, error) {
	query := notDeletedFilter()

	switch {
	case len(filter.Categories) > 0:
		query["category"] = bson.M{"$in": filter.Categories}
	case filter.Category != nil:
		query["category"] = *filter.Category
	}

	if filter.Status != "" {
		query["status"] = filter.Status
	} else {
		query["status"] = entity.ProductStatusActive
	}

	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}

	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$in": filter.Tags}
	}
	if filter.Featured != nil {
		query["is_featured"] = *filter.Featured
	}
	if filter.OnSale != nil {
		query["is_on_sale"] = *filter.OnSale
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	order, ok := productSorts[sort]
	if !ok {
		order = productSorts[dao.SortNewest]
	}
	return d.findPage(ctx, query, order, page, limit)
}

func (d *productDAO) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}
	return d.findMany(ctx, withNotDeleted(bson.M{"_id": bson.M{"$in": ids}}), nil)
}

func (d *productDAO) FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := withNotDeleted(bson.M{
		"is_featured": true,
		"status":      entity.ProductStatusActive,
	})
	opts := options.Find().
		SetSort(productSorts[dao.SortNewest]).
		SetLimit(int64(limit))
	return d.findMany(ctx, query, opts)
}

func (d *productDAO) FindRelated(ctx context.Context, categoryID, exclude primitive.ObjectID, limit int) ([]*entity.Product, error) {
	query := withNotDeleted(bson.M{
		"category": categoryID,
		"status":   entity.ProductStatusActive,
		"_id":      bson.M{"$ne": exclude},
	})
	opts := options.Find().
		SetSort(productSorts[dao.SortBestSelling]).
		SetLimit(int64(limit))
	return d.findMany(ctx, query, opts)
}

func (d *productDAO) FindLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := withNotDeleted(bson.M{
		"track_quantity": true,
		"status":         entity.ProductStatusActive,
		"$expr":          bson.M{"$lte": bson.A{"$quantity", "$low_stock_threshold"}},
	})
	opts := options.Find().
		SetSort(bson.D{{Key: "quantity", Value: 1}}).
		SetLimit(int64(limit))
	return d.findMany(ctx, query, opts)
}

// AdjustStock applies a single conditional $inc. For negative deltas the
// filter requires sufficient quantity, so a concurrent oversell loses the
// race and surfaces as ErrInsufficientStock instead of a negative count.
func (d *productDAO) AdjustStock(ctx context.Context, adj dao.StockAdjustment, allowNegative bool) error {
	guard := adj.Delta < 0 && !allowNegative

	var filter, update bson.M
	if adj.VariantSKU == "" {
		filter = bson.M{"_id": adj.ProductID}
		if guard {
			filter["quantity"] = bson.M{"$gte": -adj.Delta}
		}
		update = bson.M{
			"$inc": bson.M{"quantity": adj.Delta},
			"$set": bson.M{"updated_at": time.Now()},
		}
	} else {
		variant := bson.M{"sku": adj.VariantSKU}
		if guard {
			variant["quantity"] = bson.M{"$gte": -adj.Delta}
		}
		filter = bson.M{
			"_id":      adj.ProductID,
			"variants": bson.M{"$elemMatch": variant},
		}
		update = bson.M{
			"$inc": bson.M{"variants.$.quantity": adj.Delta},
			"$set": bson.M{"updated_at": time.Now()},
		}
	}

	res, err := d.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if guard {
			return dao.ErrInsufficientStock
		}
		return apperrors.ErrNotFound
	}
	return nil
}

func (d *productDAO) IncrementSalesCount(ctx context.Context, id primitive.ObjectID, qty int64) error {
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"sales_count": qty},
		"$set": bson.M{"updated_at": time.Now()},
	})
}

func (d *productDAO) SetRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int64) error {
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"rating":       rating,
			"review_count": reviewCount,
			"updated_at":   time.Now(),
		},
	})
}

func (d *productDAO) BulkUpdateStatus(ctx context.Context, ids []primitive.ObjectID, status entity.ProductStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return d.updateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
}

func (d *productDAO) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	now := time.Now()
	return d.updateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{
		"$set": bson.M{"deleted_at": now, "updated_at": now},
	})
}

func (d *productDAO) ClearExpiredNewFlags(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -entity.NewProductWindowDays)
	return d.updateMany(ctx, bson.M{
		"is_new_product": true,
		"created_at":     bson.M{"$lt": cutoff},
	}, bson.M{
		"$set": bson.M{"is_new_product": false, "updated_at": time.Now()},
	})
}
