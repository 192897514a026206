package dao

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// CategoryDAO provides access to the category tree
type CategoryDAO interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, page, limit int) ([]*entity.Category, int64, error)
	FindActive(ctx context.Context) ([]*entity.Category, error)
	FindMenu(ctx context.Context) ([]*entity.Category, error)
	CountChildren(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ProductSort is one of the fixed product sort orders
type ProductSort string

const (
	SortNewest      ProductSort = "newest"
	SortOldest      ProductSort = "oldest"
	SortPriceAsc    ProductSort = "price_asc"
	SortPriceDesc   ProductSort = "price_desc"
	SortNameAsc     ProductSort = "name_asc"
	SortNameDesc    ProductSort = "name_desc"
	SortBestSelling ProductSort = "best_selling"
	SortTopRated    ProductSort = "top_rated"
)

// ProductFilter narrows product searches. Zero values mean "no constraint";
// Status defaults to active when empty.
type ProductFilter struct {
	Category   *primitive.ObjectID
	Categories []primitive.ObjectID // category plus descendants
	MinPrice   float64
	MaxPrice   float64
	Status     entity.ProductStatus
	Tags       []string
	Search     string // $text search
	Featured   *bool
	OnSale     *bool
}

// StockAdjustment is one atomic stock change for a product or variant line.
type StockAdjustment struct {
	ProductID  primitive.ObjectID
	VariantSKU string
	Delta      int // negative to reserve stock, positive to restore it
}

// ProductDAO provides access to catalog products
type ProductDAO interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, filter ProductFilter, sort ProductSort, page, limit int) ([]*entity.Product, int64, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Product, error)
	FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error)
	FindRelated(ctx context.Context, categoryID, exclude primitive.ObjectID, limit int) ([]*entity.Product, error)
	FindLowStock(ctx context.Context, limit int) ([]*entity.Product, error)

	// AdjustStock applies a conditional stock change. Negative deltas only
	// match documents with sufficient quantity unless allowNegative is set,
	// so an ErrInsufficientStock result cannot oversell.
	AdjustStock(ctx context.Context, adj StockAdjustment, allowNegative bool) error
	IncrementSalesCount(ctx context.Context, id primitive.ObjectID, qty int64) error
	SetRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int64) error

	BulkUpdateStatus(ctx context.Context, ids []primitive.ObjectID, status entity.ProductStatus) (int64, error)
	BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error)

	// ClearExpiredNewFlags unsets is_new_product on products older than the
	// new-product window. Used by the scheduled sweep.
	ClearExpiredNewFlags(ctx context.Context) (int64, error)
}
