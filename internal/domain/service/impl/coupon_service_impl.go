package impl

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

// couponService implements service.CouponService
type couponService struct {
	couponDAO  dao.CouponDAO
	productDAO dao.ProductDAO
}

// NewCouponService creates a new CouponService instance
func NewCouponService(couponDAO dao.CouponDAO, productDAO dao.ProductDAO) service.CouponService {
	return &couponService{couponDAO: couponDAO, productDAO: productDAO}
}

func (s *couponService) Create(ctx context.Context, req *request.CreateCouponRequest) (*entity.Coupon, error) {
	code := strings.ToUpper(req.Code)
	exists, err := s.couponDAO.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, service.ErrCouponExists
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid start_date, want RFC3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid end_date, want RFC3339")
	}
	if !end.After(start) {
		return nil, apperrors.BadRequest("end_date must be after start_date")
	}

	products, err := objectIDs(req.Products)
	if err != nil {
		return nil, apperrors.BadRequest("invalid product id in scope")
	}
	categories, err := objectIDs(req.Categories)
	if err != nil {
		return nil, apperrors.BadRequest("invalid category id in scope")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	coupon := &entity.Coupon{
		Code:           code,
		Description:    req.Description,
		DiscountType:   entity.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		UsageLimit:     req.UsageLimit,
		Products:       products,
		Categories:     categories,
		IsActive:       active,
		StartDate:      start,
		EndDate:        end,
	}
	if err := s.couponDAO.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Coupon, error) {
	coupon, err := s.couponDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, service.ErrCouponNotFound
	}
	return coupon, nil
}

func (s *couponService) Update(ctx context.Context, id primitive.ObjectID, req *request.UpdateCouponRequest) (*entity.Coupon, error) {
	coupon, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		coupon.Description = *req.Description
	}
	if req.DiscountType != nil {
		coupon.DiscountType = entity.DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}
	if req.MinOrderAmount != nil {
		coupon.MinOrderAmount = *req.MinOrderAmount
	}
	if req.MaxDiscount != nil {
		coupon.MaxDiscount = *req.MaxDiscount
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = req.UsageLimit
	}
	if req.Products != nil {
		products, err := objectIDs(req.Products)
		if err != nil {
			return nil, apperrors.BadRequest("invalid product id in scope")
		}
		coupon.Products = products
	}
	if req.Categories != nil {
		categories, err := objectIDs(req.Categories)
		if err != nil {
			return nil, apperrors.BadRequest("invalid category id in scope")
		}
		coupon.Categories = categories
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		start, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return nil, apperrors.BadRequest("invalid start_date, want RFC3339")
		}
		coupon.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return nil, apperrors.BadRequest("invalid end_date, want RFC3339")
		}
		coupon.EndDate = end
	}
	if !coupon.EndDate.After(coupon.StartDate) {
		return nil, apperrors.BadRequest("end_date must be after start_date")
	}

	if err := s.couponDAO.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.couponDAO.Delete(ctx, id)
}

func (s *couponService) List(ctx context.Context, page, limit int) ([]*entity.Coupon, int64, error) {
	return s.couponDAO.FindAll(ctx, page, limit)
}

func (s *couponService) Check(ctx context.Context, code string, cart *entity.Cart) (*response.CouponCheck, error) {
	code = strings.ToUpper(code)
	invalid := func(reason string) *response.CouponCheck {
		return &response.CouponCheck{Valid: false, Code: code, Reason: reason}
	}

	coupon, err := s.couponDAO.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return invalid("coupon not found"), nil
	}
	if !coupon.IsValidAt(time.Now()) {
		return invalid("coupon is not active"), nil
	}

	base, err := s.eligibleSubtotal(ctx, coupon, cart)
	if err != nil {
		return nil, err
	}
	if base == 0 {
		return invalid("no cart items qualify for this coupon"), nil
	}
	if base < coupon.MinOrderAmount {
		return invalid("order amount below coupon minimum"), nil
	}

	discount := coupon.DiscountFor(base)
	if discount == 0 {
		return invalid("coupon yields no discount"), nil
	}
	return &response.CouponCheck{Valid: true, Code: code, Discount: discount}, nil
}

func (s *couponService) Redeem(ctx context.Context, code string) error {
	err := s.couponDAO.Redeem(ctx, strings.ToUpper(code))
	switch {
	case errors.Is(err, dao.ErrCouponExhausted):
		return service.ErrCouponExhausted
	case errors.Is(err, dao.ErrCouponInactive):
		return service.ErrCouponInvalid
	case errors.Is(err, apperrors.ErrNotFound):
		return service.ErrCouponNotFound
	default:
		return err
	}
}

// eligibleSubtotal computes the discount base. An unscoped coupon applies to
// the whole cart; a scoped one only to lines whose product or category is
// listed.
func (s *couponService) eligibleSubtotal(ctx context.Context, coupon *entity.Coupon, cart *entity.Cart) (float64, error) {
	if len(coupon.Products) == 0 && len(coupon.Categories) == 0 {
		return cart.Subtotal, nil
	}

	var base float64
	for _, item := range cart.Items {
		if containsID(coupon.Products, item.Product) {
			base += item.Price * float64(item.Quantity)
			continue
		}
		if len(coupon.Categories) == 0 {
			continue
		}
		product, err := s.productDAO.FindByID(ctx, item.Product)
		if err != nil {
			return 0, err
		}
		if product != nil && containsID(coupon.Categories, product.Category) {
			base += item.Price * float64(item.Quantity)
		}
	}
	return base, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func objectIDs(hexes []string) ([]primitive.ObjectID, error) {
	if len(hexes) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
