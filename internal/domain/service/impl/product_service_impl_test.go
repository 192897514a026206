package impl

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

func setupProductService(t *testing.T) (service.ProductService, *mocks.MockProductDAO, *mocks.MockCategoryDAO, *mocks.MockPublisher) {
	t.Helper()
	productDAO := mocks.NewMockProductDAO()
	categoryDAO := mocks.NewMockCategoryDAO()
	publisher := mocks.NewMockPublisher()
	categoryService := NewCategoryService(categoryDAO, noopCache())
	svc := NewProductService(productDAO, categoryDAO, categoryService, noopCache(), publisher, zap.NewNop())
	return svc, productDAO, categoryDAO, publisher
}

func seedCategory(dao *mocks.MockCategoryDAO) *entity.Category {
	return dao.AddCategory(&entity.Category{Name: "Electronics", Slug: "electronics", IsActive: true})
}

func seedActiveProduct(dao *mocks.MockProductDAO, category *entity.Category, quantity int) *entity.Product {
	return dao.AddProduct(&entity.Product{
		Name:          "Widget",
		Slug:          "widget",
		Price:         25,
		Quantity:      quantity,
		TrackQuantity: true,
		Category:      category.ID,
		Status:        entity.ProductStatusActive,
	})
}

func TestProductServiceCreate(t *testing.T) {
	svc, _, categoryDAO, _ := setupProductService(t)
	category := seedCategory(categoryDAO)

	product, err := svc.Create(context.Background(), &request.CreateProductRequest{
		Name:     "Gaming Mouse",
		Price:    49.99,
		Quantity: 10,
		Category: category.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if product.Slug != "gaming-mouse" {
		t.Errorf("slug = %q, want gaming-mouse", product.Slug)
	}
	if product.Status != entity.ProductStatusDraft {
		t.Errorf("status = %q, want draft", product.Status)
	}
	if !product.TrackQuantity {
		t.Error("TrackQuantity should default to true")
	}
	if !product.IsNewProduct {
		t.Error("new products should carry the new flag")
	}
}

func TestProductServiceCreateExplicitSlug(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	category := seedCategory(categoryDAO)
	seedActiveProduct(productDAO, category, 10)
	ctx := context.Background()

	product, err := svc.Create(ctx, &request.CreateProductRequest{
		Name:     "Wireless Widget",
		Slug:     "Widget Pro!",
		Price:    30,
		Category: category.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if product.Slug != "widget-pro" {
		t.Errorf("slug = %q, want widget-pro", product.Slug)
	}

	// an explicit slug is never suffixed, the duplicate is rejected
	_, err = svc.Create(ctx, &request.CreateProductRequest{
		Name:     "Another Widget",
		Slug:     "widget",
		Price:    20,
		Category: category.ID.Hex(),
	})
	if !errors.Is(err, service.ErrSlugTaken) {
		t.Fatalf("err = %v, want ErrSlugTaken", err)
	}
}

func TestProductServiceCreateUnknownCategory(t *testing.T) {
	svc, _, _, _ := setupProductService(t)

	_, err := svc.Create(context.Background(), &request.CreateProductRequest{
		Name:     "Orphan",
		Price:    10,
		Category: "ffffffffffffffffffffffff",
	})
	if !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestProductServiceUpdateStockSubtract(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	product := seedActiveProduct(productDAO, seedCategory(categoryDAO), 10)

	updated, err := svc.UpdateStock(context.Background(), product.ID, &request.UpdateStockRequest{
		Operation: "subtract",
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("UpdateStock: %v", err)
	}
	if updated.Quantity != 6 {
		t.Errorf("quantity = %d, want 6", updated.Quantity)
	}
}

func TestProductServiceUpdateStockInsufficient(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	product := seedActiveProduct(productDAO, seedCategory(categoryDAO), 3)

	_, err := svc.UpdateStock(context.Background(), product.ID, &request.UpdateStockRequest{
		Operation: "subtract",
		Quantity:  5,
	})
	if !errors.Is(err, service.ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
}

func TestProductServiceUpdateStockUnknownVariant(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	product := seedActiveProduct(productDAO, seedCategory(categoryDAO), 10)

	_, err := svc.UpdateStock(context.Background(), product.ID, &request.UpdateStockRequest{
		Operation:  "add",
		Quantity:   1,
		VariantSKU: "NOPE-1",
	})
	if !errors.Is(err, service.ErrVariantNotFound) {
		t.Fatalf("err = %v, want ErrVariantNotFound", err)
	}
}

func TestProductServiceReserveStock(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	category := seedCategory(categoryDAO)
	product := seedActiveProduct(productDAO, category, 10)

	err := svc.ReserveStock(context.Background(), []dao.StockAdjustment{
		{ProductID: product.ID, Delta: -3},
	})
	if err != nil {
		t.Fatalf("ReserveStock: %v", err)
	}
	if product.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", product.Quantity)
	}
}

func TestProductServiceReserveStockRollsBackOnFailure(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	category := seedCategory(categoryDAO)
	plenty := seedActiveProduct(productDAO, category, 10)
	scarce := productDAO.AddProduct(&entity.Product{
		Name:          "Rare",
		Slug:          "rare",
		Price:         99,
		Quantity:      1,
		TrackQuantity: true,
		Category:      category.ID,
		Status:        entity.ProductStatusActive,
	})

	err := svc.ReserveStock(context.Background(), []dao.StockAdjustment{
		{ProductID: plenty.ID, Delta: -2},
		{ProductID: scarce.ID, Delta: -5},
	})
	if !errors.Is(err, service.ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
	if plenty.Quantity != 10 {
		t.Errorf("first reservation not rolled back, quantity = %d", plenty.Quantity)
	}
	if scarce.Quantity != 1 {
		t.Errorf("scarce quantity = %d, want 1", scarce.Quantity)
	}
}

func TestProductServiceReserveStockBackorder(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	category := seedCategory(categoryDAO)
	product := productDAO.AddProduct(&entity.Product{
		Name:           "Preorder",
		Slug:           "preorder",
		Price:          50,
		Quantity:       1,
		TrackQuantity:  true,
		AllowBackorder: true,
		Category:       category.ID,
		Status:         entity.ProductStatusActive,
	})

	err := svc.ReserveStock(context.Background(), []dao.StockAdjustment{
		{ProductID: product.ID, Delta: -3},
	})
	if err != nil {
		t.Fatalf("ReserveStock: %v", err)
	}
	if product.Quantity != -2 {
		t.Errorf("quantity = %d, want -2", product.Quantity)
	}
}

func TestProductServiceRestoreStock(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	product := seedActiveProduct(productDAO, seedCategory(categoryDAO), 5)

	err := svc.RestoreStock(context.Background(), []dao.StockAdjustment{
		{ProductID: product.ID, Delta: -3},
	})
	if err != nil {
		t.Fatalf("RestoreStock: %v", err)
	}
	if product.Quantity != 8 {
		t.Errorf("quantity = %d, want 8", product.Quantity)
	}
}

func TestProductServiceBulkUpdateStatus(t *testing.T) {
	svc, productDAO, categoryDAO, _ := setupProductService(t)
	category := seedCategory(categoryDAO)
	a := seedActiveProduct(productDAO, category, 1)
	b := productDAO.AddProduct(&entity.Product{
		Name: "Other", Slug: "other", Price: 5, Category: category.ID,
		Status: entity.ProductStatusActive,
	})

	updated, err := svc.BulkUpdateStatus(context.Background(), []primitive.ObjectID{a.ID, b.ID}, entity.ProductStatusArchived)
	if err != nil {
		t.Fatalf("BulkUpdateStatus: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}
	if a.Status != entity.ProductStatusArchived || b.Status != entity.ProductStatusArchived {
		t.Error("statuses not applied")
	}
}

func TestProductServiceGetByIDNotFound(t *testing.T) {
	svc, _, _, _ := setupProductService(t)

	_, err := svc.GetByID(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}
