package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

type orderFixture struct {
	svc        service.OrderService
	orderDAO   *mocks.MockOrderDAO
	cartDAO    *mocks.MockCartDAO
	userDAO    *mocks.MockUserDAO
	productDAO *mocks.MockProductDAO
	couponDAO  *mocks.MockCouponDAO
	publisher  *mocks.MockPublisher
}

func setupOrderService(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orderDAO:   mocks.NewMockOrderDAO(),
		cartDAO:    mocks.NewMockCartDAO(),
		userDAO:    mocks.NewMockUserDAO(),
		productDAO: mocks.NewMockProductDAO(),
		couponDAO:  mocks.NewMockCouponDAO(),
		publisher:  mocks.NewMockPublisher(),
	}
	categoryDAO := mocks.NewMockCategoryDAO()
	categoryService := NewCategoryService(categoryDAO, noopCache())
	productService := NewProductService(f.productDAO, categoryDAO, categoryService, noopCache(), f.publisher, zap.NewNop())
	couponService := NewCouponService(f.couponDAO, f.productDAO)
	cartService := NewCartService(f.cartDAO, f.productDAO, couponService)
	cfg := &config.Config{Shipping: config.ShippingConfig{
		FreeShippingMinimum: 2000,
		StandardRate:        60,
		ExpressRate:         120,
	}}
	f.svc = NewOrderService(f.orderDAO, f.cartDAO, f.userDAO, f.productDAO, productService, cartService, couponService, f.publisher, cfg, zap.NewNop())
	return f
}

func testAddress() request.AddressRequest {
	return request.AddressRequest{
		Label:    "Home",
		FullName: "Alice",
		Phone:    "01700000000",
		Street:   "1 Main Rd",
		City:     "Dhaka",
		Country:  "Bangladesh",
	}
}

// seedCheckout seeds a user, a product with the given stock and a cart
// holding quantity of it at the given price.
func (f *orderFixture) seedCheckout(t *testing.T, stock, quantity int, price float64) (*entity.User, *entity.Product) {
	t.Helper()
	user := f.userDAO.AddUser(&entity.User{
		Name: "Alice", Email: "alice@example.com",
		Role: entity.RoleCustomer, Status: entity.UserStatusActive,
	})
	product := f.productDAO.AddProduct(&entity.Product{
		Name: "Widget", Slug: "widget", Price: price,
		Quantity: stock, TrackQuantity: true,
		Category: primitive.NewObjectID(),
		Status:   entity.ProductStatusActive,
	})
	cart := &entity.Cart{
		User: user.ID,
		Items: []entity.CartItem{{
			Product:  product.ID,
			Name:     product.Name,
			Quantity: quantity,
			Price:    price,
		}},
	}
	cart.Recalculate()
	if err := f.cartDAO.Save(context.Background(), cart); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	return user, product
}

func createReq() *request.CreateOrderRequest {
	return &request.CreateOrderRequest{
		ShippingAddress: testAddress(),
		ShippingMethod:  "standard",
		PaymentMethod:   "cod",
	}
}

func TestOrderServiceCreate(t *testing.T) {
	f := setupOrderService(t)
	user, product := f.seedCheckout(t, 10, 2, 100)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.OrderNumber == "" {
		t.Error("expected an order number")
	}
	if order.Status != entity.OrderStatusPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if order.Subtotal != 200 || order.ShippingCost != 60 || order.Total != 260 {
		t.Errorf("totals = %v/%v/%v, want 200/60/260", order.Subtotal, order.ShippingCost, order.Total)
	}
	if product.Quantity != 8 {
		t.Errorf("stock = %d, want 8 after reservation", product.Quantity)
	}

	// cart is consumed
	cart, _ := f.cartDAO.FindByUser(ctx, user.ID)
	if cart != nil {
		t.Error("cart not deleted after checkout")
	}
	if user.TotalOrders != 1 {
		t.Errorf("user order count = %d, want 1", user.TotalOrders)
	}
	if product.SalesCount != 2 {
		t.Errorf("sales count = %d, want 2", product.SalesCount)
	}
	if len(f.publisher.Published()) == 0 {
		t.Error("expected an order placed event")
	}
}

func TestOrderServiceCreateFreeShipping(t *testing.T) {
	f := setupOrderService(t)
	user, _ := f.seedCheckout(t, 10, 2, 1500)

	order, err := f.svc.Create(context.Background(), user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.ShippingCost != 0 {
		t.Errorf("shipping = %v, want free above the minimum", order.ShippingCost)
	}
}

func TestOrderServiceCreateEmptyCart(t *testing.T) {
	f := setupOrderService(t)
	user := f.userDAO.AddUser(&entity.User{Name: "Bob", Email: "bob@example.com", Status: entity.UserStatusActive})

	_, err := f.svc.Create(context.Background(), user.ID, createReq())
	if !errors.Is(err, service.ErrCartEmpty) {
		t.Fatalf("err = %v, want ErrCartEmpty", err)
	}
}

func TestOrderServiceCreateInsufficientStock(t *testing.T) {
	f := setupOrderService(t)
	user, product := f.seedCheckout(t, 1, 3, 100)

	// checkout revalidation flags the shortfall before anything is reserved
	_, err := f.svc.Create(context.Background(), user.ID, createReq())
	if !errors.Is(err, service.ErrCartChanged) {
		t.Fatalf("err = %v, want ErrCartChanged", err)
	}
	if product.Quantity != 1 {
		t.Errorf("stock = %d, want untouched 1", product.Quantity)
	}
}

func TestOrderServiceCreateArchivedProductRejected(t *testing.T) {
	f := setupOrderService(t)
	user, product := f.seedCheckout(t, 10, 2, 100)
	ctx := context.Background()

	// archived after being carted
	product.Status = entity.ProductStatusArchived

	_, err := f.svc.Create(ctx, user.ID, createReq())
	if !errors.Is(err, service.ErrCartChanged) {
		t.Fatalf("err = %v, want ErrCartChanged", err)
	}
	if product.Quantity != 10 {
		t.Errorf("stock = %d, want untouched 10", product.Quantity)
	}
	if orders, total, _ := f.orderDAO.FindAll(ctx, dao.OrderFilter{}, 1, 10); total != 0 || len(orders) != 0 {
		t.Errorf("orders persisted = %d, want none", total)
	}
}

func TestOrderServiceCreatePriceChangeBlocksThenRetries(t *testing.T) {
	f := setupOrderService(t)
	user, product := f.seedCheckout(t, 10, 2, 100)
	ctx := context.Background()

	// repriced after being carted: the first attempt flags it and
	// refreshes the cart, the retry snapshots the current price
	product.Price = 150

	if _, err := f.svc.Create(ctx, user.ID, createReq()); !errors.Is(err, service.ErrCartChanged) {
		t.Fatalf("err = %v, want ErrCartChanged", err)
	}
	cart, _ := f.cartDAO.FindByUser(ctx, user.ID)
	if cart.Items[0].Price != 150 {
		t.Fatalf("cart price = %v, want refreshed 150", cart.Items[0].Price)
	}

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("retry Create: %v", err)
	}
	if order.Items[0].Price != 150 || order.Subtotal != 300 {
		t.Errorf("snapshot = %v/%v, want 150/300", order.Items[0].Price, order.Subtotal)
	}
}

func TestOrderServiceCreateExpiredCouponRejected(t *testing.T) {
	f := setupOrderService(t)
	user, product := f.seedCheckout(t, 10, 2, 100)
	ctx := context.Background()

	// expired after ApplyCoupon stored it on the cart
	f.couponDAO.AddCoupon(&entity.Coupon{
		Code: "LATE", DiscountType: entity.DiscountFixed, DiscountValue: 10,
		IsActive:  true,
		StartDate: time.Now().Add(-2 * time.Hour),
		EndDate:   time.Now().Add(-time.Hour),
	})
	cart, _ := f.cartDAO.FindByUser(ctx, user.ID)
	cart.CouponCode = "LATE"
	cart.Discount = 10
	cart.Recalculate()
	if err := f.cartDAO.Save(ctx, cart); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	if _, err := f.svc.Create(ctx, user.ID, createReq()); !errors.Is(err, service.ErrCartChanged) {
		t.Fatalf("err = %v, want ErrCartChanged", err)
	}
	if product.Quantity != 10 {
		t.Errorf("stock = %d, want untouched 10", product.Quantity)
	}

	// the dead coupon was dropped, so the retry checks out undiscounted
	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("retry Create: %v", err)
	}
	if order.CouponCode != "" || order.Discount != 0 {
		t.Errorf("coupon = %q discount = %v, want none", order.CouponCode, order.Discount)
	}
}

func TestOrderServiceCreateExhaustedCouponRestoresStock(t *testing.T) {
	f := setupOrderService(t)
	user, product := f.seedCheckout(t, 10, 2, 100)
	ctx := context.Background()

	f.couponDAO.AddCoupon(&entity.Coupon{
		Code: "DEAD", DiscountType: entity.DiscountFixed, DiscountValue: 10,
		IsActive:  true,
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(time.Hour),
	})
	cart, _ := f.cartDAO.FindByUser(ctx, user.ID)
	cart.CouponCode = "DEAD"
	cart.Discount = 10
	cart.Recalculate()
	if err := f.cartDAO.Save(ctx, cart); err != nil {
		t.Fatalf("save cart: %v", err)
	}
	// the last slot goes to a concurrent checkout between revalidation
	// and redemption
	f.couponDAO.RedeemErr = dao.ErrCouponExhausted

	_, err := f.svc.Create(ctx, user.ID, createReq())
	if !errors.Is(err, service.ErrCouponExhausted) {
		t.Fatalf("err = %v, want ErrCouponExhausted", err)
	}
	if product.Quantity != 10 {
		t.Errorf("stock = %d, want 10 after rollback", product.Quantity)
	}
}

func TestOrderServiceStatusTransitions(t *testing.T) {
	f := setupOrderService(t)
	user, _ := f.seedCheckout(t, 10, 1, 100)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, status := range []entity.OrderStatus{
		entity.OrderStatusConfirmed,
		entity.OrderStatusProcessing,
		entity.OrderStatusShipped,
		entity.OrderStatusDelivered,
	} {
		order, err = f.svc.UpdateStatus(ctx, order.ID, status, "", nil)
		if err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
	}
	if order.DeliveredAt == nil {
		t.Error("DeliveredAt not set")
	}
	if len(order.Timeline) < 5 {
		t.Errorf("timeline entries = %d, want at least 5", len(order.Timeline))
	}
}

func TestOrderServiceIllegalTransition(t *testing.T) {
	f := setupOrderService(t)
	user, _ := f.seedCheckout(t, 10, 1, 100)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.svc.UpdateStatus(ctx, order.ID, entity.OrderStatusDelivered, "", nil)
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestOrderServiceCancelRestoresStock(t *testing.T) {
	f := setupOrderService(t)
	user, product := f.seedCheckout(t, 10, 3, 100)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if product.Quantity != 7 {
		t.Fatalf("stock = %d, want 7 after reservation", product.Quantity)
	}

	cancelled, err := f.svc.Cancel(ctx, order.ID, user.ID, "changed my mind")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != entity.OrderStatusCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}
	if product.Quantity != 10 {
		t.Errorf("stock = %d, want 10 after cancellation", product.Quantity)
	}
}

func TestOrderServiceCancelAfterShipment(t *testing.T) {
	f := setupOrderService(t)
	user, _ := f.seedCheckout(t, 10, 1, 100)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, status := range []entity.OrderStatus{
		entity.OrderStatusConfirmed, entity.OrderStatusProcessing, entity.OrderStatusShipped,
	} {
		if _, err := f.svc.UpdateStatus(ctx, order.ID, status, "", nil); err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
	}

	_, err = f.svc.Cancel(ctx, order.ID, user.ID, "too late")
	if !errors.Is(err, service.ErrOrderNotCancelable) {
		t.Fatalf("err = %v, want ErrOrderNotCancelable", err)
	}
}

func TestOrderServiceCancelSomeoneElsesOrder(t *testing.T) {
	f := setupOrderService(t)
	user, _ := f.seedCheckout(t, 10, 1, 100)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.svc.Cancel(ctx, order.ID, primitive.NewObjectID(), "")
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderServiceGetByIDAuthorization(t *testing.T) {
	f := setupOrderService(t)
	user, _ := f.seedCheckout(t, 10, 1, 100)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stranger := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleCustomer}
	if _, err := f.svc.GetByID(ctx, order.ID, stranger); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	admin := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleAdmin}
	if _, err := f.svc.GetByID(ctx, order.ID, admin); err != nil {
		t.Errorf("admin access: %v", err)
	}
}

func TestOrderServiceSetPaymentStateConfirmsPending(t *testing.T) {
	f := setupOrderService(t)
	user, _ := f.seedCheckout(t, 10, 1, 100)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, user.ID, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	paid, err := f.svc.SetPaymentState(ctx, order.ID, entity.PaymentStatePaid, "bkash")
	if err != nil {
		t.Fatalf("SetPaymentState: %v", err)
	}
	if paid.PaymentStatus != entity.PaymentStatePaid {
		t.Errorf("payment status = %q, want paid", paid.PaymentStatus)
	}
	if paid.Status != entity.OrderStatusConfirmed {
		t.Errorf("status = %q, want confirmed after payment", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Error("PaidAt not set")
	}
	if paid.PaymentMethod != "bkash" {
		t.Errorf("payment method = %q, want bkash", paid.PaymentMethod)
	}
}
