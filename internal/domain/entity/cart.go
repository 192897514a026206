package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a single cart line. Price is the unit price captured when the
// line was added or last validated against the catalog.
type CartItem struct {
	Product    primitive.ObjectID `bson:"product" json:"product"`
	VariantSKU string             `bson:"variant_sku,omitempty" json:"variant_sku,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
}

// Cart is the per-user shopping cart (one per user).
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Items      []CartItem         `bson:"items" json:"items"`
	CouponCode string             `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	ItemCount  int                `bson:"item_count" json:"item_count"`
	Subtotal   float64            `bson:"subtotal" json:"subtotal"`
	Discount   float64            `bson:"discount" json:"discount"`
	Total      float64            `bson:"total" json:"total"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// Recalculate recomputes item count and totals from the items. Totals are
// never trusted from input: every mutation path must call this before
// persisting. Total is floored at zero.
func (c *Cart) Recalculate() {
	count := 0
	subtotal := 0.0
	for i := range c.Items {
		count += c.Items[i].Quantity
		subtotal += c.Items[i].Price * float64(c.Items[i].Quantity)
	}
	c.ItemCount = count
	c.Subtotal = subtotal
	total := subtotal - c.Discount
	if total < 0 {
		total = 0
	}
	c.Total = total
}

// FindItem returns the index of the line matching product and variant SKU,
// or -1 when no such line exists.
func (c *Cart) FindItem(productID primitive.ObjectID, variantSKU string) int {
	for i := range c.Items {
		if c.Items[i].Product == productID && c.Items[i].VariantSKU == variantSKU {
			return i
		}
	}
	return -1
}

// RemoveItem deletes the line at index i, preserving order
func (c *Cart) RemoveItem(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// Clear empties the cart and drops any applied coupon
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.CouponCode = ""
	c.Discount = 0
	c.Recalculate()
}
