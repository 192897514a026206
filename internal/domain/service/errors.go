package service

import "errors"

// Sentinel errors shared across services. Controllers map these onto the
// HTTP status taxonomy.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrSlugTaken = errors.New("slug already in use")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasChildren = errors.New("category has child categories")
	ErrCategoryTooDeep     = errors.New("category nesting limit reached")
	ErrCategoryCycle       = errors.New("category cannot be its own ancestor")

	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("product variant not found")
	ErrOutOfStock       = errors.New("insufficient stock")
	ErrBackorderBlocked = errors.New("product does not allow backorders")

	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("item not in cart")
	ErrCartChanged      = errors.New("cart contents changed, review before checkout")

	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("illegal order status transition")
	ErrOrderNotCancelable = errors.New("order can no longer be cancelled")
	ErrOrderAlreadyPaid   = errors.New("order is already paid")

	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotRefundable = errors.New("only completed payments can be refunded")

	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("product already reviewed")

	ErrWishlistDuplicate = errors.New("product already in wishlist")
	ErrWishlistNotFound  = errors.New("product not in wishlist")

	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponExists    = errors.New("coupon code already exists")
	ErrCouponInvalid   = errors.New("coupon is not valid")
	ErrCouponExhausted = errors.New("coupon usage limit reached")

	ErrZoneNotFound     = errors.New("shipping zone not found")
	ErrRateNotFound     = errors.New("shipping rate not found")
	ErrShipmentNotFound = errors.New("shipment not found")
	ErrShipmentExists   = errors.New("order already has a shipment")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrForbidden = errors.New("access denied")
)
