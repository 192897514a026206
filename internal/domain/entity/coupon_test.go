package entity

import (
	"testing"
	"time"
)

func validCoupon(now time.Time) Coupon {
	return Coupon{
		Code:          "SAVE20",
		DiscountType:  DiscountPercentage,
		DiscountValue: 20,
		IsActive:      true,
		StartDate:     now.Add(-24 * time.Hour),
		EndDate:       now.Add(24 * time.Hour),
	}
}

func TestCouponIsValidAt(t *testing.T) {
	now := time.Now()

	c := validCoupon(now)
	if !c.IsValidAt(now) {
		t.Error("coupon inside window should be valid")
	}

	c = validCoupon(now)
	c.IsActive = false
	if c.IsValidAt(now) {
		t.Error("inactive coupon should be invalid")
	}

	c = validCoupon(now)
	c.StartDate = now.Add(time.Hour)
	if c.IsValidAt(now) {
		t.Error("coupon before start date should be invalid")
	}

	c = validCoupon(now)
	c.EndDate = now.Add(-time.Hour)
	if c.IsValidAt(now) {
		t.Error("expired coupon should be invalid")
	}

	c = validCoupon(now)
	limit := int64(10)
	c.UsageLimit = &limit
	c.UsedCount = 10
	if c.IsValidAt(now) {
		t.Error("coupon at usage limit should be invalid")
	}

	c.UsedCount = 9
	if !c.IsValidAt(now) {
		t.Error("coupon under usage limit should be valid")
	}

	c = validCoupon(now)
	c.UsageLimit = nil
	c.UsedCount = 1000000
	if !c.IsValidAt(now) {
		t.Error("coupon without usage limit should ignore used count")
	}
}

func TestCouponDiscountFor(t *testing.T) {
	c := Coupon{DiscountType: DiscountPercentage, DiscountValue: 10}
	if got := c.DiscountFor(500); got != 50 {
		t.Errorf("10%% of 500 = %v, want 50", got)
	}

	c.MaxDiscount = 30
	if got := c.DiscountFor(500); got != 30 {
		t.Errorf("capped discount = %v, want 30", got)
	}

	c = Coupon{DiscountType: DiscountFixed, DiscountValue: 100}
	if got := c.DiscountFor(60); got != 60 {
		t.Errorf("fixed discount should not exceed subtotal, got %v", got)
	}

	c = Coupon{DiscountType: DiscountFixed, DiscountValue: 50, MinOrderAmount: 200}
	if got := c.DiscountFor(150); got != 0 {
		t.Errorf("below min order amount discount = %v, want 0", got)
	}
	if got := c.DiscountFor(250); got != 50 {
		t.Errorf("above min order amount discount = %v, want 50", got)
	}
}
