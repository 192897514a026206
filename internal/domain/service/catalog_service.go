package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
)

// CategoryService defines the interface for category tree operations
type CategoryService interface {
	Create(ctx context.Context, req *request.CreateCategoryRequest) (*entity.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, req *request.UpdateCategoryRequest) (*entity.Category, error)

	// Delete removes a category; blocked while child categories exist
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, page, limit int) ([]*entity.Category, int64, error)

	// Tree assembles the nested tree from active categories
	Tree(ctx context.Context) ([]*entity.CategoryNode, error)

	// Menu assembles the tree restricted to show_in_menu categories
	Menu(ctx context.Context) ([]*entity.CategoryNode, error)

	// DescendantIDs returns the category id plus all descendant ids,
	// used to widen catalog queries to a whole subtree
	DescendantIDs(ctx context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error)
}

// ProductService defines the interface for catalog products
type ProductService interface {
	Create(ctx context.Context, req *request.CreateProductRequest) (*entity.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)

	// GetBySlug returns the product together with related products from
	// the same category
	GetBySlug(ctx context.Context, slug string) (*response.ProductDetail, error)

	Update(ctx context.Context, id primitive.ObjectID, req *request.UpdateProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Search runs the catalog query engine
	Search(ctx context.Context, query *request.ProductQuery) ([]*entity.Product, int64, error)

	Featured(ctx context.Context, limit int) ([]*entity.Product, error)
	LowStock(ctx context.Context, limit int) ([]*entity.Product, error)

	// UpdateStock adds or subtracts stock atomically. Subtracting below
	// zero fails with ErrOutOfStock unless the product allows backorders.
	UpdateStock(ctx context.Context, id primitive.ObjectID, req *request.UpdateStockRequest) (*entity.Product, error)

	BulkUpdateStatus(ctx context.Context, ids []primitive.ObjectID, status entity.ProductStatus) (int64, error)
	BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error)

	// ReserveStock atomically decrements stock for order lines; on failure
	// every already-reserved line is restored
	ReserveStock(ctx context.Context, items []dao.StockAdjustment) error

	// RestoreStock returns reserved stock after cancellation
	RestoreStock(ctx context.Context, items []dao.StockAdjustment) error
}
