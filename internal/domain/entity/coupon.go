package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon is a discount code with a validity window and optional usage limit.
// Codes are stored uppercase.
type Coupon struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Code           string               `bson:"code" json:"code"`
	Description    string               `bson:"description,omitempty" json:"description,omitempty"`
	DiscountType   DiscountType         `bson:"discount_type" json:"discount_type"`
	DiscountValue  float64              `bson:"discount_value" json:"discount_value"`
	MinOrderAmount float64              `bson:"min_order_amount,omitempty" json:"min_order_amount,omitempty"`
	MaxDiscount    float64              `bson:"max_discount,omitempty" json:"max_discount,omitempty"`
	UsageLimit     *int64               `bson:"usage_limit,omitempty" json:"usage_limit,omitempty"`
	UsedCount      int64                `bson:"used_count" json:"used_count"`
	Products       []primitive.ObjectID `bson:"products,omitempty" json:"products,omitempty"`
	Categories     []primitive.ObjectID `bson:"categories,omitempty" json:"categories,omitempty"`
	IsActive       bool                 `bson:"is_active" json:"is_active"`
	StartDate      time.Time            `bson:"start_date" json:"start_date"`
	EndDate        time.Time            `bson:"end_date" json:"end_date"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// IsValidAt reports whether the coupon can be redeemed at the given instant:
// active, inside the validity window, and under the usage limit.
func (c *Coupon) IsValidAt(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.StartDate) || now.After(c.EndDate) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// DiscountFor computes the discount amount for a subtotal. Percentage
// discounts are capped at MaxDiscount when set; the result never exceeds
// the subtotal.
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	if subtotal < c.MinOrderAmount {
		return 0
	}
	var discount float64
	switch c.DiscountType {
	case DiscountPercentage:
		discount = subtotal * c.DiscountValue / 100
		if c.MaxDiscount > 0 && discount > c.MaxDiscount {
			discount = c.MaxDiscount
		}
	case DiscountFixed:
		discount = c.DiscountValue
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}
