package request

// AddToCartRequest adds a product line to the cart
type AddToCartRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	VariantSKU string `json:"variant_sku,omitempty"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest sets the quantity of an existing line
type UpdateCartItemRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	VariantSKU string `json:"variant_sku,omitempty"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
}

// RemoveCartItemRequest removes one line from the cart
type RemoveCartItemRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	VariantSKU string `json:"variant_sku,omitempty"`
}

// ApplyCouponRequest applies a coupon code to the cart
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,min=3,max=30"`
}

// CreateOrderRequest places an order from the current cart
type CreateOrderRequest struct {
	ShippingAddress AddressRequest `json:"shipping_address" binding:"required"`
	ShippingMethod  string         `json:"shipping_method" binding:"required,oneof=standard express"`
	PaymentMethod   string         `json:"payment_method" binding:"required,oneof=sslcommerz bkash nagad cod bank_transfer"`
	Notes           string         `json:"notes,omitempty" binding:"max=500"`
}

// UpdateOrderStatusRequest moves an order through the state machine (admin)
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled returned"`
	Note   string `json:"note,omitempty" binding:"max=500"`
}

// OrderQuery filters order listings
type OrderQuery struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	OrderNumber   string `form:"order_number"`
	From          string `form:"from"`
	To            string `form:"to"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=10"`
}

// InitiatePaymentRequest starts a payment for an order
type InitiatePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Method  string `json:"method" binding:"required,oneof=sslcommerz bkash nagad cod bank_transfer"`
}

// PaymentCallbackRequest is the normalized gateway callback payload
type PaymentCallbackRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Status        string `json:"status" binding:"required,oneof=completed failed cancelled"`
	GatewayRef    string `json:"gateway_ref,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// RefundRequest refunds a completed payment (admin)
type RefundRequest struct {
	Reason string `json:"reason,omitempty" binding:"max=500"`
}

// CreateReviewRequest submits a product review
type CreateReviewRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Title     string `json:"title,omitempty" binding:"max=200"`
	Comment   string `json:"comment,omitempty" binding:"max=2000"`
}

// UpdateReviewRequest edits the caller's own review
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Title   *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// ModerateReviewRequest approves or rejects a review (admin)
type ModerateReviewRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// AddToWishlistRequest adds a product to the wishlist
type AddToWishlistRequest struct {
	ProductID       string `json:"product_id" binding:"required"`
	NotifyOnRestock bool   `json:"notify_on_restock,omitempty"`
	NotifyOnSale    bool   `json:"notify_on_sale,omitempty"`
}

// MoveToCartRequest moves a wishlist item into the cart
type MoveToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity,omitempty" binding:"omitempty,gt=0"`
}
