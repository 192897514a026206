package response

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// CartIssue describes one problem found while validating a cart line.
type CartIssue struct {
	Product    primitive.ObjectID `json:"product"`
	VariantSKU string             `json:"variant_sku,omitempty"`
	Reason     string             `json:"reason"`
	Available  int                `json:"available,omitempty"`
}

// CartValidation is the result of revalidating a cart against the catalog.
type CartValidation struct {
	Valid  bool         `json:"valid"`
	Issues []CartIssue  `json:"issues"`
	Cart   *entity.Cart `json:"cart"`
}

// ProductDetail bundles a product with its related listings.
type ProductDetail struct {
	Product *entity.Product   `json:"product"`
	Related []*entity.Product `json:"related"`
}

// ShippingQuote is a priced shipping option for a destination area.
type ShippingQuote struct {
	Zone          string  `json:"zone"`
	RateID        string  `json:"rate_id,omitempty"`
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	EstimatedDays int     `json:"estimated_days,omitempty"`
}

// PaymentInitResponse is returned when a payment is initiated. RedirectURL
// is empty for cash on delivery.
type PaymentInitResponse struct {
	Payment     *entity.Payment `json:"payment"`
	RedirectURL string          `json:"redirect_url,omitempty"`
}

// CouponCheck is the result of validating a coupon against a cart subtotal.
type CouponCheck struct {
	Valid    bool    `json:"valid"`
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Reason   string  `json:"reason,omitempty"`
}

// Dashboard is the admin analytics snapshot.
type Dashboard struct {
	Stats         *dao.DashboardStats    `json:"stats"`
	TopBySales    []*entity.Product      `json:"top_by_sales"`
	TopByRating   []*entity.Product      `json:"top_by_rating"`
	TopCustomers  []*dao.CustomerStats   `json:"top_customers"`
	CategorySales []*dao.CategoryRevenue `json:"category_sales"`
}

// UnreadCount is a notification badge counter.
type UnreadCount struct {
	Count int64 `json:"count"`
}
