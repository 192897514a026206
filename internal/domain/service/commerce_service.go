package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
)

// CartService defines the interface for cart operations
type CartService interface {
	// Get returns the user's cart, creating an empty one if needed
	Get(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error)

	// AddItem merges a line by (product, variant) and rechecks stock
	AddItem(ctx context.Context, userID primitive.ObjectID, req *request.AddToCartRequest) (*entity.Cart, error)

	// UpdateItem sets the quantity of an existing line
	UpdateItem(ctx context.Context, userID primitive.ObjectID, req *request.UpdateCartItemRequest) (*entity.Cart, error)

	// RemoveItem removes one line
	RemoveItem(ctx context.Context, userID primitive.ObjectID, req *request.RemoveCartItemRequest) (*entity.Cart, error)

	// Clear empties the cart
	Clear(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error)

	// Validate rechecks every line against the catalog, refreshing stale
	// prices in place and reporting price, stock and availability issues.
	// Lines with issues are kept; the caller decides how to handle them.
	Validate(ctx context.Context, userID primitive.ObjectID) (*response.CartValidation, error)

	// ApplyCoupon validates the code and sets the cart discount
	ApplyCoupon(ctx context.Context, userID primitive.ObjectID, code string) (*entity.Cart, error)

	// RemoveCoupon clears the coupon and discount
	RemoveCoupon(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error)
}

// OrderService defines the interface for order lifecycle operations.
// It is the single authority for order status transitions.
type OrderService interface {
	// Create places an order from the user's cart
	Create(ctx context.Context, userID primitive.ObjectID, req *request.CreateOrderRequest) (*entity.Order, error)

	// GetByID returns an order; non-admin callers only see their own
	GetByID(ctx context.Context, id primitive.ObjectID, caller *entity.User) (*entity.Order, error)

	GetByNumber(ctx context.Context, orderNumber string, caller *entity.User) (*entity.Order, error)

	// ListMine returns the caller's order history
	ListMine(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*entity.Order, int64, error)

	// List returns all orders with filters (admin)
	List(ctx context.Context, filter dao.OrderFilter, page, limit int) ([]*entity.Order, int64, error)

	// UpdateStatus moves the order through the state machine, appends a
	// timeline entry and performs transition side effects
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus, note string, changedBy *primitive.ObjectID) (*entity.Order, error)

	// Cancel is the customer-facing cancellation of pending or confirmed
	// orders; stock is restored
	Cancel(ctx context.Context, id, userID primitive.ObjectID, reason string) (*entity.Order, error)

	// SetPaymentState records a payment outcome against the order,
	// auto-confirming pending orders when payment completes
	SetPaymentState(ctx context.Context, id primitive.ObjectID, state entity.PaymentState, method string) (*entity.Order, error)
}

// PaymentService defines the interface for payment processing
type PaymentService interface {
	// Initiate starts a payment and returns the gateway redirect URL when
	// the method requires one
	Initiate(ctx context.Context, userID primitive.ObjectID, req *request.InitiatePaymentRequest) (*response.PaymentInitResponse, error)

	// HandleCallback processes a normalized gateway callback and cascades
	// the outcome onto the order
	HandleCallback(ctx context.Context, req *request.PaymentCallbackRequest) (*entity.Payment, error)

	// Refund marks a completed payment refunded (bookkeeping only)
	Refund(ctx context.Context, id primitive.ObjectID, reason string) (*entity.Payment, error)

	GetByOrder(ctx context.Context, orderID primitive.ObjectID) ([]*entity.Payment, error)
	List(ctx context.Context, status entity.PaymentStatus, page, limit int) ([]*entity.Payment, int64, error)
}
