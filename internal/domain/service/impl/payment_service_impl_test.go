package impl

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/payment/gateway"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

// stubGateway is a hosted-checkout gateway that always succeeds unless
// InitiateErr is set.
type stubGateway struct {
	method      entity.PaymentMethod
	InitiateErr error
}

func (g *stubGateway) Method() entity.PaymentMethod { return g.method }

func (g *stubGateway) Initiate(ctx context.Context, payment *entity.Payment, order *entity.Order) (*gateway.InitResult, error) {
	if g.InitiateErr != nil {
		return nil, g.InitiateErr
	}
	return &gateway.InitResult{
		RedirectURL: "https://pay.example.com/" + payment.TransactionID,
		GatewayRef:  "gw-" + payment.TransactionID,
	}, nil
}

type paymentFixture struct {
	svc        service.PaymentService
	paymentDAO *mocks.MockPaymentDAO
	orderDAO   *mocks.MockOrderDAO
	publisher  *mocks.MockPublisher
	gateway    *stubGateway
}

func setupPaymentService(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		paymentDAO: mocks.NewMockPaymentDAO(),
		orderDAO:   mocks.NewMockOrderDAO(),
		publisher:  mocks.NewMockPublisher(),
		gateway:    &stubGateway{method: entity.MethodBkash},
	}
	productDAO := mocks.NewMockProductDAO()
	categoryDAO := mocks.NewMockCategoryDAO()
	categoryService := NewCategoryService(categoryDAO, noopCache())
	productService := NewProductService(productDAO, categoryDAO, categoryService, noopCache(), f.publisher, zap.NewNop())
	couponService := NewCouponService(mocks.NewMockCouponDAO(), productDAO)
	cartDAO := mocks.NewMockCartDAO()
	cartService := NewCartService(cartDAO, productDAO, couponService)
	cfg := &config.Config{Shipping: config.ShippingConfig{StandardRate: 60}}
	orderService := NewOrderService(f.orderDAO, cartDAO, mocks.NewMockUserDAO(), productDAO, productService, cartService, couponService, f.publisher, cfg, zap.NewNop())
	f.svc = NewPaymentService(f.paymentDAO, f.orderDAO, orderService, []gateway.Gateway{f.gateway}, f.publisher, zap.NewNop())
	return f
}

func (f *paymentFixture) seedOrder(userID primitive.ObjectID, total float64) *entity.Order {
	return f.orderDAO.AddOrder(&entity.Order{
		OrderNumber:   "VLR-20260828-0001",
		User:          userID,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStateUnpaid,
		Total:         total,
	})
}

func TestPaymentServiceInitiateHosted(t *testing.T) {
	f := setupPaymentService(t)
	userID := primitive.NewObjectID()
	order := f.seedOrder(userID, 500)

	resp, err := f.svc.Initiate(context.Background(), userID, &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "bkash",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if resp.Payment.Status != entity.PaymentProcessing {
		t.Errorf("status = %q, want processing", resp.Payment.Status)
	}
	if resp.Payment.Amount != 500 {
		t.Errorf("amount = %v, want the order total", resp.Payment.Amount)
	}
	if resp.RedirectURL == "" {
		t.Error("expected a redirect URL from the gateway")
	}
}

func TestPaymentServiceInitiateOffline(t *testing.T) {
	f := setupPaymentService(t)
	userID := primitive.NewObjectID()
	order := f.seedOrder(userID, 500)

	resp, err := f.svc.Initiate(context.Background(), userID, &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "cod",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if resp.Payment.Status != entity.PaymentPending {
		t.Errorf("status = %q, cod settles out of band and stays pending", resp.Payment.Status)
	}
	if resp.RedirectURL != "" {
		t.Errorf("redirect = %q, want none for cod", resp.RedirectURL)
	}
}

func TestPaymentServiceInitiateAlreadyPaid(t *testing.T) {
	f := setupPaymentService(t)
	userID := primitive.NewObjectID()
	order := f.seedOrder(userID, 500)
	order.PaymentStatus = entity.PaymentStatePaid

	_, err := f.svc.Initiate(context.Background(), userID, &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "bkash",
	})
	if !errors.Is(err, service.ErrOrderAlreadyPaid) {
		t.Fatalf("err = %v, want ErrOrderAlreadyPaid", err)
	}
}

func TestPaymentServiceInitiateForeignOrder(t *testing.T) {
	f := setupPaymentService(t)
	order := f.seedOrder(primitive.NewObjectID(), 500)

	_, err := f.svc.Initiate(context.Background(), primitive.NewObjectID(), &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "bkash",
	})
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestPaymentServiceCallbackCompleted(t *testing.T) {
	f := setupPaymentService(t)
	userID := primitive.NewObjectID()
	order := f.seedOrder(userID, 500)
	ctx := context.Background()

	resp, err := f.svc.Initiate(ctx, userID, &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "bkash",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	payment, err := f.svc.HandleCallback(ctx, &request.PaymentCallbackRequest{
		TransactionID: resp.Payment.TransactionID,
		Status:        "completed",
	})
	if err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if payment.Status != entity.PaymentCompleted {
		t.Errorf("status = %q, want completed", payment.Status)
	}
	if payment.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
	if order.PaymentStatus != entity.PaymentStatePaid {
		t.Errorf("order payment state = %q, want paid", order.PaymentStatus)
	}
	if order.Status != entity.OrderStatusConfirmed {
		t.Errorf("order status = %q, want confirmed", order.Status)
	}
	if len(f.publisher.Published()) == 0 {
		t.Error("expected a payment event")
	}
}

func TestPaymentServiceCallbackReplayIgnored(t *testing.T) {
	f := setupPaymentService(t)
	userID := primitive.NewObjectID()
	order := f.seedOrder(userID, 500)
	ctx := context.Background()

	resp, err := f.svc.Initiate(ctx, userID, &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "bkash",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	if _, err := f.svc.HandleCallback(ctx, &request.PaymentCallbackRequest{
		TransactionID: resp.Payment.TransactionID,
		Status:        "completed",
	}); err != nil {
		t.Fatalf("first callback: %v", err)
	}
	events := len(f.publisher.Published())

	// the replayed failure must not override the settled payment
	payment, err := f.svc.HandleCallback(ctx, &request.PaymentCallbackRequest{
		TransactionID: resp.Payment.TransactionID,
		Status:        "failed",
	})
	if err != nil {
		t.Fatalf("replayed callback: %v", err)
	}
	if payment.Status != entity.PaymentCompleted {
		t.Errorf("status = %q, replay must not change it", payment.Status)
	}
	if len(f.publisher.Published()) != events {
		t.Error("replay emitted another event")
	}
}

func TestPaymentServiceCallbackFailed(t *testing.T) {
	f := setupPaymentService(t)
	userID := primitive.NewObjectID()
	order := f.seedOrder(userID, 500)
	ctx := context.Background()

	resp, err := f.svc.Initiate(ctx, userID, &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "bkash",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	payment, err := f.svc.HandleCallback(ctx, &request.PaymentCallbackRequest{
		TransactionID: resp.Payment.TransactionID,
		Status:        "failed",
		FailureReason: "insufficient balance",
	})
	if err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if payment.Status != entity.PaymentFailed {
		t.Errorf("status = %q, want failed", payment.Status)
	}
	if payment.FailureReason != "insufficient balance" {
		t.Errorf("reason = %q", payment.FailureReason)
	}
	if order.PaymentStatus != entity.PaymentStateFailed {
		t.Errorf("order payment state = %q, want failed", order.PaymentStatus)
	}
}

func TestPaymentServiceCallbackUnknownTransaction(t *testing.T) {
	f := setupPaymentService(t)

	_, err := f.svc.HandleCallback(context.Background(), &request.PaymentCallbackRequest{
		TransactionID: "TXN-unknown",
		Status:        "completed",
	})
	if !errors.Is(err, service.ErrPaymentNotFound) {
		t.Fatalf("err = %v, want ErrPaymentNotFound", err)
	}
}

func TestPaymentServiceRefund(t *testing.T) {
	f := setupPaymentService(t)
	userID := primitive.NewObjectID()
	order := f.seedOrder(userID, 500)
	ctx := context.Background()

	resp, err := f.svc.Initiate(ctx, userID, &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "bkash",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if _, err := f.svc.HandleCallback(ctx, &request.PaymentCallbackRequest{
		TransactionID: resp.Payment.TransactionID,
		Status:        "completed",
	}); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}

	refunded, err := f.svc.Refund(ctx, resp.Payment.ID, "customer return")
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if refunded.Status != entity.PaymentRefunded {
		t.Errorf("status = %q, want refunded", refunded.Status)
	}
	if refunded.RefundedAt == nil {
		t.Error("RefundedAt not set")
	}
	if order.PaymentStatus != entity.PaymentStateRefunded {
		t.Errorf("order payment state = %q, want refunded", order.PaymentStatus)
	}
}

func TestPaymentServiceRefundPendingPayment(t *testing.T) {
	f := setupPaymentService(t)
	userID := primitive.NewObjectID()
	order := f.seedOrder(userID, 500)
	ctx := context.Background()

	resp, err := f.svc.Initiate(ctx, userID, &request.InitiatePaymentRequest{
		OrderID: order.ID.Hex(),
		Method:  "cod",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	_, err = f.svc.Refund(ctx, resp.Payment.ID, "")
	if !errors.Is(err, service.ErrPaymentNotRefundable) {
		t.Fatalf("err = %v, want ErrPaymentNotRefundable", err)
	}
}
