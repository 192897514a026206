package request

// CreateCouponRequest creates a discount coupon (admin)
type CreateCouponRequest struct {
	Code           string   `json:"code" binding:"required,min=3,max=30,alphanum"`
	Description    string   `json:"description,omitempty" binding:"max=500"`
	DiscountType   string   `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue  float64  `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount float64  `json:"min_order_amount,omitempty" binding:"gte=0"`
	MaxDiscount    float64  `json:"max_discount,omitempty" binding:"gte=0"`
	UsageLimit     *int64   `json:"usage_limit,omitempty" binding:"omitempty,gt=0"`
	Products       []string `json:"products,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
	StartDate      string   `json:"start_date" binding:"required"`
	EndDate        string   `json:"end_date" binding:"required"`
}

// UpdateCouponRequest updates a coupon (admin). Nil pointers leave the
// field untouched.
type UpdateCouponRequest struct {
	Description    *string  `json:"description,omitempty" binding:"omitempty,max=500"`
	DiscountType   *string  `json:"discount_type,omitempty" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue  *float64 `json:"discount_value,omitempty" binding:"omitempty,gt=0"`
	MinOrderAmount *float64 `json:"min_order_amount,omitempty" binding:"omitempty,gte=0"`
	MaxDiscount    *float64 `json:"max_discount,omitempty" binding:"omitempty,gte=0"`
	UsageLimit     *int64   `json:"usage_limit,omitempty" binding:"omitempty,gt=0"`
	Products       []string `json:"products,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"`
	EndDate        *string  `json:"end_date,omitempty"`
}

// ValidateCouponRequest checks a code against the caller's cart
type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required,min=3,max=30"`
}
