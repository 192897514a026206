package entity

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStatus represents the publication state of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusDraft        ProductStatus = "draft"
	ProductStatusArchived     ProductStatus = "archived"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// DiscountType represents how a discount value is interpreted
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Thresholds for the auto-derived product badges.
const (
	BestSellerSalesCount = 100
	TopRatedMinRating    = 4.5
	TopRatedMinReviews   = 10
	NewProductWindowDays = 30
)

// Variant is a SKU-level attribute combination with its own price and stock
type Variant struct {
	SKU        string            `bson:"sku" json:"sku"`
	Attributes map[string]string `bson:"attributes" json:"attributes"`
	Price      float64           `bson:"price" json:"price"`
	Quantity   int               `bson:"quantity" json:"quantity"`
	Image      string            `bson:"image,omitempty" json:"image,omitempty"`
	IsActive   bool              `bson:"is_active" json:"is_active"`
}

// Product represents a catalog product
type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Slug              string             `bson:"slug" json:"slug"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Price             float64            `bson:"price" json:"price"`
	ComparePrice      float64            `bson:"compare_price,omitempty" json:"compare_price,omitempty"`
	Quantity          int                `bson:"quantity" json:"quantity"`
	TrackQuantity     bool               `bson:"track_quantity" json:"track_quantity"`
	AllowBackorder    bool               `bson:"allow_backorder" json:"allow_backorder"`
	LowStockThreshold int                `bson:"low_stock_threshold" json:"low_stock_threshold"`
	Weight            float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	Category          primitive.ObjectID `bson:"category" json:"category"`
	Images            []string           `bson:"images" json:"images"`
	Tags              []string           `bson:"tags" json:"tags"`
	Status            ProductStatus      `bson:"status" json:"status"`
	Variants          []Variant          `bson:"variants" json:"variants"`
	DiscountType      DiscountType       `bson:"discount_type,omitempty" json:"discount_type,omitempty"`
	DiscountValue     float64            `bson:"discount_value,omitempty" json:"discount_value,omitempty"`
	IsOnSale          bool               `bson:"is_on_sale" json:"is_on_sale"`
	SaleStartDate     *time.Time         `bson:"sale_start_date,omitempty" json:"sale_start_date,omitempty"`
	SaleEndDate       *time.Time         `bson:"sale_end_date,omitempty" json:"sale_end_date,omitempty"`
	IsFeatured        bool               `bson:"is_featured" json:"is_featured"`
	IsBestSeller      bool               `bson:"is_best_seller" json:"is_best_seller"`
	IsTopRated        bool               `bson:"is_top_rated" json:"is_top_rated"`
	IsNewProduct      bool               `bson:"is_new_product" json:"is_new_product"`
	Rating            float64            `bson:"rating" json:"rating"`
	ReviewCount       int64              `bson:"review_count" json:"review_count"`
	SalesCount        int64              `bson:"sales_count" json:"sales_count"`
	PublishedAt       *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
	DeletedAt         *time.Time         `bson:"deleted_at,omitempty" json:"-"`
}

// IsInStock reports whether any stock is available. Products with variants
// are in stock when any active variant has stock; quantity tracking disabled
// means always in stock.
func (p *Product) IsInStock() bool {
	if !p.TrackQuantity {
		return true
	}
	if len(p.Variants) > 0 {
		for i := range p.Variants {
			v := &p.Variants[i]
			if v.IsActive && v.Quantity > 0 {
				return true
			}
		}
		return false
	}
	return p.Quantity > 0
}

// IsLowStock reports whether stock is positive but at or below the threshold
func (p *Product) IsLowStock() bool {
	if !p.TrackQuantity || len(p.Variants) > 0 {
		return false
	}
	return p.Quantity > 0 && p.Quantity <= p.LowStockThreshold
}

// DiscountPercentage returns the rounded percentage saved against the
// compare-at price, or 0 when there is no effective markdown.
func (p *Product) DiscountPercentage() int {
	if p.ComparePrice <= 0 || p.ComparePrice <= p.Price {
		return 0
	}
	return int(math.Round((p.ComparePrice - p.Price) / p.ComparePrice * 100))
}

// FinalPrice returns the price after the sale discount. Discounts only apply
// while the product is on sale; the result never drops below zero.
func (p *Product) FinalPrice() float64 {
	if !p.IsOnSale || p.DiscountValue <= 0 {
		return p.Price
	}
	var price float64
	switch p.DiscountType {
	case DiscountPercentage:
		price = p.Price - p.Price*p.DiscountValue/100
	case DiscountFixed:
		price = p.Price - p.DiscountValue
	default:
		return p.Price
	}
	if price < 0 {
		return 0
	}
	return price
}

// FindVariant returns the active variant with the given SKU, or nil
func (p *Product) FindVariant(sku string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}

// AvailableQuantity returns sellable stock for the given variant SKU
// (empty SKU means the base product).
func (p *Product) AvailableQuantity(variantSKU string) int {
	if variantSKU != "" {
		if v := p.FindVariant(variantSKU); v != nil {
			return v.Quantity
		}
		return 0
	}
	return p.Quantity
}

// ApplySaveDerivations recomputes all stored derived fields the way a save
// hook would: sale window, badges, and first-publication stamp.
func (p *Product) ApplySaveDerivations(now time.Time) {
	p.IsOnSale = p.saleWindowOpen(now)

	if p.SalesCount >= BestSellerSalesCount {
		p.IsBestSeller = true
	}
	p.IsTopRated = p.Rating >= TopRatedMinRating && p.ReviewCount >= TopRatedMinReviews

	if p.IsNewProduct && now.Sub(p.CreatedAt) > NewProductWindowDays*24*time.Hour {
		p.IsNewProduct = false
	}

	if p.Status == ProductStatusActive && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}

	p.UpdatedAt = now
}

func (p *Product) saleWindowOpen(now time.Time) bool {
	if p.SaleStartDate == nil || p.SaleEndDate == nil {
		return false
	}
	return !now.Before(*p.SaleStartDate) && !now.After(*p.SaleEndDate)
}
