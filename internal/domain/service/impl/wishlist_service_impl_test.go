package impl

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

func setupWishlistService(t *testing.T) (service.WishlistService, *mocks.MockWishlistDAO, *mocks.MockProductDAO, *mocks.MockCartDAO) {
	t.Helper()
	wishlistDAO := mocks.NewMockWishlistDAO()
	productDAO := mocks.NewMockProductDAO()
	cartDAO := mocks.NewMockCartDAO()
	couponService := NewCouponService(mocks.NewMockCouponDAO(), productDAO)
	cartService := NewCartService(cartDAO, productDAO, couponService)
	svc := NewWishlistService(wishlistDAO, productDAO, cartService)
	return svc, wishlistDAO, productDAO, cartDAO
}

func TestWishlistServiceAdd(t *testing.T) {
	svc, _, productDAO, _ := setupWishlistService(t)
	product := seedSellable(productDAO, "Widget", "widget", 25, 10)
	userID := primitive.NewObjectID()

	wishlist, err := svc.Add(context.Background(), userID, &request.AddToWishlistRequest{
		ProductID:    product.ID.Hex(),
		NotifyOnSale: true,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(wishlist.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(wishlist.Items))
	}
	if !wishlist.Items[0].NotifyOnSale {
		t.Error("NotifyOnSale not recorded")
	}
}

func TestWishlistServiceAddDuplicate(t *testing.T) {
	svc, _, productDAO, _ := setupWishlistService(t)
	product := seedSellable(productDAO, "Widget", "widget", 25, 10)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	req := &request.AddToWishlistRequest{ProductID: product.ID.Hex()}
	if _, err := svc.Add(ctx, userID, req); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := svc.Add(ctx, userID, req); !errors.Is(err, service.ErrWishlistDuplicate) {
		t.Fatalf("err = %v, want ErrWishlistDuplicate", err)
	}
}

func TestWishlistServiceAddInactiveProduct(t *testing.T) {
	svc, _, productDAO, _ := setupWishlistService(t)
	product := productDAO.AddProduct(&entity.Product{
		Name: "Gone", Slug: "gone", Price: 10,
		Category: primitive.NewObjectID(),
		Status:   entity.ProductStatusDraft,
	})

	_, err := svc.Add(context.Background(), primitive.NewObjectID(), &request.AddToWishlistRequest{
		ProductID: product.ID.Hex(),
	})
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestWishlistServiceRemoveMissing(t *testing.T) {
	svc, _, _, _ := setupWishlistService(t)

	_, err := svc.Remove(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, service.ErrWishlistNotFound) {
		t.Fatalf("err = %v, want ErrWishlistNotFound", err)
	}
}

func TestWishlistServiceMoveToCart(t *testing.T) {
	svc, wishlistDAO, productDAO, _ := setupWishlistService(t)
	product := seedSellable(productDAO, "Widget", "widget", 25, 10)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	if _, err := svc.Add(ctx, userID, &request.AddToWishlistRequest{ProductID: product.ID.Hex()}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	cart, err := svc.MoveToCart(ctx, userID, &request.MoveToCartRequest{ProductID: product.ID.Hex()})
	if err != nil {
		t.Fatalf("MoveToCart: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("cart = %+v, want one line with quantity 1", cart.Items)
	}

	wishlist, _ := wishlistDAO.FindByUser(ctx, userID)
	if len(wishlist.Items) != 0 {
		t.Error("item not removed from wishlist after move")
	}
}

func TestWishlistServiceMoveToCartOutOfStockKeepsItem(t *testing.T) {
	svc, wishlistDAO, productDAO, _ := setupWishlistService(t)
	product := seedSellable(productDAO, "Widget", "widget", 25, 1)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	if _, err := svc.Add(ctx, userID, &request.AddToWishlistRequest{ProductID: product.ID.Hex()}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, err := svc.MoveToCart(ctx, userID, &request.MoveToCartRequest{ProductID: product.ID.Hex(), Quantity: 5})
	if !errors.Is(err, service.ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
	wishlist, _ := wishlistDAO.FindByUser(ctx, userID)
	if len(wishlist.Items) != 1 {
		t.Error("failed move must leave the wishlist untouched")
	}
}

func TestWishlistServiceClear(t *testing.T) {
	svc, wishlistDAO, productDAO, _ := setupWishlistService(t)
	product := seedSellable(productDAO, "Widget", "widget", 25, 10)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	if _, err := svc.Add(ctx, userID, &request.AddToWishlistRequest{ProductID: product.ID.Hex()}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Clear(ctx, userID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	wishlist, _ := wishlistDAO.FindByUser(ctx, userID)
	if len(wishlist.Items) != 0 {
		t.Error("wishlist not cleared")
	}
}
