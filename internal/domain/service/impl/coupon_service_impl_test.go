package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

func setupCouponService(t *testing.T) (service.CouponService, *mocks.MockCouponDAO, *mocks.MockProductDAO) {
	t.Helper()
	couponDAO := mocks.NewMockCouponDAO()
	productDAO := mocks.NewMockProductDAO()
	svc := NewCouponService(couponDAO, productDAO)
	return svc, couponDAO, productDAO
}

func activeCoupon(code string) *entity.Coupon {
	return &entity.Coupon{
		Code:          code,
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
	}
}

func cartWith(items ...entity.CartItem) *entity.Cart {
	cart := &entity.Cart{User: primitive.NewObjectID(), Items: items}
	cart.Recalculate()
	return cart
}

func TestCouponServiceCreate(t *testing.T) {
	svc, _, _ := setupCouponService(t)

	coupon, err := svc.Create(context.Background(), &request.CreateCouponRequest{
		Code:          "welcome15",
		DiscountType:  "percentage",
		DiscountValue: 15,
		StartDate:     time.Now().Add(-time.Hour).Format(time.RFC3339),
		EndDate:       time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if coupon.Code != "WELCOME15" {
		t.Errorf("code = %q, want WELCOME15", coupon.Code)
	}
	if !coupon.IsActive {
		t.Error("coupon should default to active")
	}
}

func TestCouponServiceCreateDuplicateCode(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	couponDAO.AddCoupon(activeCoupon("DUP"))

	_, err := svc.Create(context.Background(), &request.CreateCouponRequest{
		Code:          "dup",
		DiscountType:  "fixed",
		DiscountValue: 5,
		StartDate:     time.Now().Format(time.RFC3339),
		EndDate:       time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	if !errors.Is(err, service.ErrCouponExists) {
		t.Fatalf("err = %v, want ErrCouponExists", err)
	}
}

func TestCouponServiceCheckValid(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	couponDAO.AddCoupon(activeCoupon("SAVE10"))
	cart := cartWith(entity.CartItem{Product: primitive.NewObjectID(), Quantity: 2, Price: 50})

	check, err := svc.Check(context.Background(), "save10", cart)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !check.Valid {
		t.Fatalf("expected valid, got reason %q", check.Reason)
	}
	if check.Discount != 10 {
		t.Errorf("discount = %v, want 10", check.Discount)
	}
}

func TestCouponServiceCheckUnknownCode(t *testing.T) {
	svc, _, _ := setupCouponService(t)
	cart := cartWith(entity.CartItem{Product: primitive.NewObjectID(), Quantity: 1, Price: 50})

	check, err := svc.Check(context.Background(), "NOPE", cart)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if check.Valid {
		t.Error("expected invalid for unknown code")
	}
}

func TestCouponServiceCheckUsageLimitReached(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	limit := int64(5)
	coupon := activeCoupon("MAXED")
	coupon.UsageLimit = &limit
	coupon.UsedCount = 5
	couponDAO.AddCoupon(coupon)
	cart := cartWith(entity.CartItem{Product: primitive.NewObjectID(), Quantity: 1, Price: 50})

	check, err := svc.Check(context.Background(), "MAXED", cart)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if check.Valid {
		t.Error("expected invalid for exhausted coupon")
	}
}

func TestCouponServiceCheckProductScope(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	inScope := primitive.NewObjectID()
	coupon := activeCoupon("SCOPED")
	coupon.Products = []primitive.ObjectID{inScope}
	couponDAO.AddCoupon(coupon)

	cart := cartWith(
		entity.CartItem{Product: inScope, Quantity: 1, Price: 100},
		entity.CartItem{Product: primitive.NewObjectID(), Quantity: 1, Price: 400},
	)

	check, err := svc.Check(context.Background(), "SCOPED", cart)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !check.Valid {
		t.Fatalf("expected valid, got reason %q", check.Reason)
	}
	// 10% of the eligible 100, not of the 500 cart subtotal
	if check.Discount != 10 {
		t.Errorf("discount = %v, want 10", check.Discount)
	}
}

func TestCouponServiceCheckCategoryScope(t *testing.T) {
	svc, couponDAO, productDAO := setupCouponService(t)
	category := primitive.NewObjectID()
	product := productDAO.AddProduct(&entity.Product{
		Name: "Widget", Slug: "widget", Price: 50,
		Category: category,
		Status:   entity.ProductStatusActive,
	})
	coupon := activeCoupon("CATS")
	coupon.Categories = []primitive.ObjectID{category}
	couponDAO.AddCoupon(coupon)

	cart := cartWith(
		entity.CartItem{Product: product.ID, Quantity: 2, Price: 50},
		entity.CartItem{Product: primitive.NewObjectID(), Quantity: 1, Price: 300},
	)

	check, err := svc.Check(context.Background(), "CATS", cart)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !check.Valid {
		t.Fatalf("expected valid, got reason %q", check.Reason)
	}
	if check.Discount != 10 {
		t.Errorf("discount = %v, want 10", check.Discount)
	}
}

func TestCouponServiceCheckNoEligibleItems(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	coupon := activeCoupon("SCOPED")
	coupon.Products = []primitive.ObjectID{primitive.NewObjectID()}
	couponDAO.AddCoupon(coupon)
	cart := cartWith(entity.CartItem{Product: primitive.NewObjectID(), Quantity: 1, Price: 50})

	check, err := svc.Check(context.Background(), "SCOPED", cart)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if check.Valid {
		t.Error("expected invalid when nothing in scope")
	}
}

func TestCouponServiceCheckMaxDiscountCap(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	coupon := activeCoupon("CAPPED")
	coupon.MaxDiscount = 15
	couponDAO.AddCoupon(coupon)
	cart := cartWith(entity.CartItem{Product: primitive.NewObjectID(), Quantity: 1, Price: 500})

	check, err := svc.Check(context.Background(), "CAPPED", cart)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if check.Discount != 15 {
		t.Errorf("discount = %v, want the 15 cap", check.Discount)
	}
}

func TestCouponServiceRedeem(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	limit := int64(1)
	coupon := activeCoupon("ONCE")
	coupon.UsageLimit = &limit
	couponDAO.AddCoupon(coupon)
	ctx := context.Background()

	if err := svc.Redeem(ctx, "once"); err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if err := svc.Redeem(ctx, "once"); !errors.Is(err, service.ErrCouponExhausted) {
		t.Fatalf("err = %v, want ErrCouponExhausted", err)
	}
}

func TestCouponServiceRedeemExpired(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	coupon := activeCoupon("LATE")
	coupon.StartDate = time.Now().Add(-2 * time.Hour)
	coupon.EndDate = time.Now().Add(-time.Hour)
	couponDAO.AddCoupon(coupon)

	// expired between being applied to a cart and checkout
	if err := svc.Redeem(context.Background(), "LATE"); !errors.Is(err, service.ErrCouponInvalid) {
		t.Fatalf("err = %v, want ErrCouponInvalid", err)
	}
	if coupon.UsedCount != 0 {
		t.Errorf("used count = %d, want 0", coupon.UsedCount)
	}
}

func TestCouponServiceRedeemDeactivated(t *testing.T) {
	svc, couponDAO, _ := setupCouponService(t)
	coupon := activeCoupon("PULLED")
	coupon.IsActive = false
	couponDAO.AddCoupon(coupon)

	if err := svc.Redeem(context.Background(), "PULLED"); !errors.Is(err, service.ErrCouponInvalid) {
		t.Fatalf("err = %v, want ErrCouponInvalid", err)
	}
}

func TestCouponServiceRedeemUnknown(t *testing.T) {
	svc, _, _ := setupCouponService(t)

	if err := svc.Redeem(context.Background(), "GHOST"); !errors.Is(err, service.ErrCouponNotFound) {
		t.Fatalf("err = %v, want ErrCouponNotFound", err)
	}
}

func TestCouponServiceDeleteMissing(t *testing.T) {
	svc, _, _ := setupCouponService(t)

	if err := svc.Delete(context.Background(), primitive.NewObjectID()); !errors.Is(err, service.ErrCouponNotFound) {
		t.Fatalf("err = %v, want ErrCouponNotFound", err)
	}
}
