package dao

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// ErrInsufficientStock is returned by conditional stock updates when no
// document matched the quantity filter.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrCouponExhausted is returned by Redeem when the usage limit is reached.
var ErrCouponExhausted = errors.New("coupon usage limit reached")

// ErrCouponInactive is returned by Redeem when the coupon is deactivated or
// outside its validity window.
var ErrCouponInactive = errors.New("coupon is not active")

// CartDAO provides access to per-user carts
type CartDAO interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// WishlistDAO provides access to per-user wishlists
type WishlistDAO interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*entity.Wishlist, error)
	Save(ctx context.Context, wishlist *entity.Wishlist) error
}

// OrderFilter narrows order listings
type OrderFilter struct {
	User          *primitive.ObjectID
	Status        entity.OrderStatus
	PaymentStatus entity.PaymentState
	From          *time.Time
	To            *time.Time
	OrderNumber   string
}

// OrderDAO provides access to orders
type OrderDAO interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	FindAll(ctx context.Context, filter OrderFilter, page, limit int) ([]*entity.Order, int64, error)

	// HasDeliveredProduct reports whether the user has a delivered order
	// containing the product. Used for verified-purchase marking.
	HasDeliveredProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
}

// PaymentDAO provides access to payment records
type PaymentDAO interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)
	FindByOrder(ctx context.Context, orderID primitive.ObjectID) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	FindAll(ctx context.Context, status entity.PaymentStatus, page, limit int) ([]*entity.Payment, int64, error)

	// ExpireStalePending marks pending payments older than cutoff as failed.
	ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}

// CouponDAO provides access to discount coupons
type CouponDAO interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Coupon, error)
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, page, limit int) ([]*entity.Coupon, int64, error)

	// Redeem atomically increments used_count, guarded by the usage limit,
	// the active flag and the validity window. Returns ErrCouponExhausted
	// when the limit is already reached and ErrCouponInactive when the
	// coupon was deactivated or expired.
	Redeem(ctx context.Context, code string) error

	// DeactivateExpired flips is_active off for coupons past their end date.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
