package entity

import (
	"testing"
	"time"
)

func TestProductIsInStock(t *testing.T) {
	cases := []struct {
		name string
		p    Product
		want bool
	}{
		{"untracked is always in stock", Product{TrackQuantity: false, Quantity: 0}, true},
		{"tracked with stock", Product{TrackQuantity: true, Quantity: 3}, true},
		{"tracked without stock", Product{TrackQuantity: true, Quantity: 0}, false},
		{"active variant with stock", Product{TrackQuantity: true, Variants: []Variant{
			{SKU: "A", Quantity: 0, IsActive: true},
			{SKU: "B", Quantity: 2, IsActive: true},
		}}, true},
		{"only inactive variant has stock", Product{TrackQuantity: true, Variants: []Variant{
			{SKU: "A", Quantity: 5, IsActive: false},
		}}, false},
	}
	for _, tc := range cases {
		if got := tc.p.IsInStock(); got != tc.want {
			t.Errorf("%s: IsInStock() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestProductIsLowStock(t *testing.T) {
	p := Product{TrackQuantity: true, Quantity: 3, LowStockThreshold: 5}
	if !p.IsLowStock() {
		t.Error("quantity 3 with threshold 5 should be low stock")
	}
	p.Quantity = 0
	if p.IsLowStock() {
		t.Error("zero quantity is out of stock, not low stock")
	}
	p.Quantity = 6
	if p.IsLowStock() {
		t.Error("quantity above threshold is not low stock")
	}
}

func TestProductDiscountPercentage(t *testing.T) {
	cases := []struct {
		price, compare float64
		want           int
	}{
		{80, 100, 20},
		{75, 100, 25},
		{66.67, 100, 33},
		{100, 100, 0},
		{100, 80, 0},
		{50, 0, 0},
	}
	for _, tc := range cases {
		p := Product{Price: tc.price, ComparePrice: tc.compare}
		if got := p.DiscountPercentage(); got != tc.want {
			t.Errorf("DiscountPercentage(price=%v, compare=%v) = %d, want %d", tc.price, tc.compare, got, tc.want)
		}
	}
}

func TestProductFinalPrice(t *testing.T) {
	p := Product{Price: 200, DiscountType: DiscountPercentage, DiscountValue: 25}

	if got := p.FinalPrice(); got != 200 {
		t.Errorf("off-sale FinalPrice() = %v, want 200", got)
	}

	p.IsOnSale = true
	if got := p.FinalPrice(); got != 150 {
		t.Errorf("percentage FinalPrice() = %v, want 150", got)
	}

	p.DiscountType = DiscountFixed
	p.DiscountValue = 50
	if got := p.FinalPrice(); got != 150 {
		t.Errorf("fixed FinalPrice() = %v, want 150", got)
	}

	p.DiscountValue = 500
	if got := p.FinalPrice(); got != 0 {
		t.Errorf("oversized discount FinalPrice() = %v, want 0", got)
	}
}

func TestApplySaveDerivations_SaleWindow(t *testing.T) {
	now := time.Now()
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	p := Product{Price: 100, SaleStartDate: &start, SaleEndDate: &end, CreatedAt: now}
	p.ApplySaveDerivations(now)
	if !p.IsOnSale {
		t.Error("inside sale window, IsOnSale should be true")
	}

	past := now.Add(-2 * time.Hour)
	p.SaleEndDate = &past
	p.ApplySaveDerivations(now)
	if p.IsOnSale {
		t.Error("after sale window, IsOnSale should be false")
	}
}

func TestApplySaveDerivations_Badges(t *testing.T) {
	now := time.Now()
	p := Product{SalesCount: 150, Rating: 4.8, ReviewCount: 12, CreatedAt: now}
	p.ApplySaveDerivations(now)

	if !p.IsBestSeller {
		t.Error("salesCount >= 100 should set IsBestSeller")
	}
	if !p.IsTopRated {
		t.Error("rating >= 4.5 with >= 10 reviews should set IsTopRated")
	}

	p.Rating = 4.0
	p.ApplySaveDerivations(now)
	if p.IsTopRated {
		t.Error("rating below 4.5 should clear IsTopRated")
	}
}

func TestApplySaveDerivations_NewProductExpires(t *testing.T) {
	now := time.Now()
	p := Product{IsNewProduct: true, CreatedAt: now.Add(-31 * 24 * time.Hour)}
	p.ApplySaveDerivations(now)
	if p.IsNewProduct {
		t.Error("IsNewProduct should clear after 30 days")
	}

	p2 := Product{IsNewProduct: true, CreatedAt: now.Add(-10 * 24 * time.Hour)}
	p2.ApplySaveDerivations(now)
	if !p2.IsNewProduct {
		t.Error("IsNewProduct should persist within 30 days")
	}
}

func TestApplySaveDerivations_PublishedAtStampedOnce(t *testing.T) {
	now := time.Now()
	p := Product{Status: ProductStatusActive, CreatedAt: now}
	p.ApplySaveDerivations(now)

	if p.PublishedAt == nil {
		t.Fatal("PublishedAt should be stamped on first active save")
	}
	first := *p.PublishedAt

	p.ApplySaveDerivations(now.Add(time.Hour))
	if !p.PublishedAt.Equal(first) {
		t.Error("PublishedAt should not change on later saves")
	}
}

func TestFindVariantAndAvailableQuantity(t *testing.T) {
	p := Product{
		Quantity: 7,
		Variants: []Variant{{SKU: "RED-M", Quantity: 4, IsActive: true}},
	}

	if v := p.FindVariant("RED-M"); v == nil || v.Quantity != 4 {
		t.Error("FindVariant(RED-M) should return the variant")
	}
	if v := p.FindVariant("NOPE"); v != nil {
		t.Error("FindVariant(NOPE) should return nil")
	}
	if q := p.AvailableQuantity("RED-M"); q != 4 {
		t.Errorf("AvailableQuantity(RED-M) = %d, want 4", q)
	}
	if q := p.AvailableQuantity(""); q != 7 {
		t.Errorf("AvailableQuantity(base) = %d, want 7", q)
	}
	if q := p.AvailableQuantity("NOPE"); q != 0 {
		t.Errorf("AvailableQuantity(unknown sku) = %d, want 0", q)
	}
}
