package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
)

// ReviewService defines the interface for product reviews
type ReviewService interface {
	// Create submits a review; one per (user, product), marked verified
	// when the user has a delivered order containing the product
	Create(ctx context.Context, userID primitive.ObjectID, req *request.CreateReviewRequest) (*entity.Review, error)

	// Update edits the caller's own review and resets it to pending
	Update(ctx context.Context, id, userID primitive.ObjectID, req *request.UpdateReviewRequest) (*entity.Review, error)

	// Delete removes the caller's own review (admins may delete any)
	Delete(ctx context.Context, id primitive.ObjectID, caller *entity.User) error

	// Moderate approves or rejects a review (admin)
	Moderate(ctx context.Context, id primitive.ObjectID, status entity.ReviewStatus) (*entity.Review, error)

	// ListByProduct returns approved reviews for a product
	ListByProduct(ctx context.Context, productID primitive.ObjectID, page, limit int) ([]*entity.Review, int64, error)

	// List returns reviews by moderation status (admin)
	List(ctx context.Context, status entity.ReviewStatus, page, limit int) ([]*entity.Review, int64, error)
}

// WishlistService defines the interface for per-user wishlists
type WishlistService interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*entity.Wishlist, error)
	Add(ctx context.Context, userID primitive.ObjectID, req *request.AddToWishlistRequest) (*entity.Wishlist, error)
	Remove(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Wishlist, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error

	// MoveToCart adds the wishlist item to the cart and removes it from
	// the wishlist
	MoveToCart(ctx context.Context, userID primitive.ObjectID, req *request.MoveToCartRequest) (*entity.Cart, error)
}

// CouponService defines the interface for discount coupons
type CouponService interface {
	Create(ctx context.Context, req *request.CreateCouponRequest) (*entity.Coupon, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Coupon, error)
	Update(ctx context.Context, id primitive.ObjectID, req *request.UpdateCouponRequest) (*entity.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, page, limit int) ([]*entity.Coupon, int64, error)

	// Check validates a code against a cart and computes the discount
	// without consuming a redemption
	Check(ctx context.Context, code string, cart *entity.Cart) (*response.CouponCheck, error)

	// Redeem consumes one use of the coupon atomically
	Redeem(ctx context.Context, code string) error
}

// NotificationService defines the interface for in-app notifications.
// The worker-side event handler also lives here.
type NotificationService interface {
	ListForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*entity.Notification, int64, error)
	ListForAdmin(ctx context.Context, page, limit int) ([]*entity.Notification, int64, error)

	// MarkRead marks one notification read; users may only touch their own
	MarkRead(ctx context.Context, id primitive.ObjectID, caller *entity.User) error
	MarkAllRead(ctx context.Context, caller *entity.User) (int64, error)
	UnreadCount(ctx context.Context, caller *entity.User) (int64, error)

	// Purge deletes notifications older than the retention window
	Purge(ctx context.Context) (int64, error)
}

// AnalyticsService defines the interface for the admin read side
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*response.Dashboard, error)
	RevenueByCategory(ctx context.Context, fromStr, toStr string) ([]*dao.CategoryRevenue, error)

	// ExportOrdersCSV renders orders in the window as CSV
	ExportOrdersCSV(ctx context.Context, fromStr, toStr string) ([]byte, error)
}
