package impl

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
)

// cartService implements service.CartService
type cartService struct {
	cartDAO       dao.CartDAO
	productDAO    dao.ProductDAO
	couponService service.CouponService
}

// NewCartService creates a new CartService instance
func NewCartService(cartDAO dao.CartDAO, productDAO dao.ProductDAO, couponService service.CouponService) service.CartService {
	return &cartService{
		cartDAO:       cartDAO,
		productDAO:    productDAO,
		couponService: couponService,
	}
}

func (s *cartService) Get(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	cart, err := s.cartDAO.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &entity.Cart{User: userID, Items: []entity.CartItem{}}
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID primitive.ObjectID, req *request.AddToCartRequest) (*entity.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, service.ErrProductNotFound
	}
	product, err := s.sellableProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	price := product.FinalPrice()
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	if req.VariantSKU != "" {
		variant := product.FindVariant(req.VariantSKU)
		if variant == nil || !variant.IsActive {
			return nil, service.ErrVariantNotFound
		}
		price = variant.Price
		if variant.Image != "" {
			image = variant.Image
		}
	}

	quantity := req.Quantity
	if idx := cart.FindItem(productID, req.VariantSKU); idx >= 0 {
		quantity += cart.Items[idx].Quantity
		if err := s.checkStock(product, req.VariantSKU, quantity); err != nil {
			return nil, err
		}
		cart.Items[idx].Quantity = quantity
		cart.Items[idx].Price = price
	} else {
		if err := s.checkStock(product, req.VariantSKU, quantity); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, entity.CartItem{
			Product:    productID,
			VariantSKU: req.VariantSKU,
			Name:       product.Name,
			Image:      image,
			Quantity:   quantity,
			Price:      price,
		})
	}

	return s.finalize(ctx, cart)
}

func (s *cartService) UpdateItem(ctx context.Context, userID primitive.ObjectID, req *request.UpdateCartItemRequest) (*entity.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, service.ErrCartItemNotFound
	}
	idx := cart.FindItem(productID, req.VariantSKU)
	if idx < 0 {
		return nil, service.ErrCartItemNotFound
	}

	product, err := s.sellableProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStock(product, req.VariantSKU, req.Quantity); err != nil {
		return nil, err
	}

	cart.Items[idx].Quantity = req.Quantity
	return s.finalize(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, req *request.RemoveCartItemRequest) (*entity.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, service.ErrCartItemNotFound
	}
	idx := cart.FindItem(productID, req.VariantSKU)
	if idx < 0 {
		return nil, service.ErrCartItemNotFound
	}

	cart.RemoveItem(idx)
	return s.finalize(ctx, cart)
}

func (s *cartService) Clear(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	if err := s.cartDAO.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) Validate(ctx context.Context, userID primitive.ObjectID) (*response.CartValidation, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// every line stays in the cart whatever its problem; callers decide
	// whether to remove it
	issues := []response.CartIssue{}
	for i := range cart.Items {
		item := &cart.Items[i]
		product, err := s.productDAO.FindByID(ctx, item.Product)
		if err != nil {
			return nil, err
		}
		if product == nil || product.Status != entity.ProductStatusActive {
			issues = append(issues, response.CartIssue{
				Product:    item.Product,
				VariantSKU: item.VariantSKU,
				Reason:     "product no longer available",
			})
			continue
		}

		price := product.FinalPrice()
		if item.VariantSKU != "" {
			variant := product.FindVariant(item.VariantSKU)
			if variant == nil || !variant.IsActive {
				issues = append(issues, response.CartIssue{
					Product:    item.Product,
					VariantSKU: item.VariantSKU,
					Reason:     "variant no longer available",
				})
				continue
			}
			price = variant.Price
		}

		if product.TrackQuantity && !product.AllowBackorder {
			available := product.AvailableQuantity(item.VariantSKU)
			if available < item.Quantity {
				issues = append(issues, response.CartIssue{
					Product:    item.Product,
					VariantSKU: item.VariantSKU,
					Reason:     "insufficient stock",
					Available:  available,
				})
			}
		}

		if item.Price != price {
			issues = append(issues, response.CartIssue{
				Product:    item.Product,
				VariantSKU: item.VariantSKU,
				Reason:     "price changed",
			})
		}

		// refresh the stale snapshot in place
		item.Price = price
		item.Name = product.Name
	}

	if cart.CouponCode != "" {
		cart.Recalculate()
		check, err := s.couponService.Check(ctx, cart.CouponCode, cart)
		if err != nil {
			return nil, err
		}
		if !check.Valid {
			issues = append(issues, response.CartIssue{Reason: "coupon no longer valid"})
		}
	}

	cart, err = s.finalize(ctx, cart)
	if err != nil {
		return nil, err
	}
	return &response.CartValidation{
		Valid:  len(issues) == 0,
		Issues: issues,
		Cart:   cart,
	}, nil
}

func (s *cartService) ApplyCoupon(ctx context.Context, userID primitive.ObjectID, code string) (*entity.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, service.ErrCartEmpty
	}

	check, err := s.couponService.Check(ctx, code, cart)
	if err != nil {
		return nil, err
	}
	if !check.Valid {
		return nil, service.ErrCouponInvalid
	}

	cart.CouponCode = check.Code
	cart.Discount = check.Discount
	cart.Recalculate()
	if err := s.cartDAO.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) RemoveCoupon(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.CouponCode = ""
	cart.Discount = 0
	cart.Recalculate()
	if err := s.cartDAO.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// finalize reapplies any coupon against the new subtotal, recomputes
// totals and persists the cart. A coupon that stopped matching is dropped
// rather than surfaced as an error.
func (s *cartService) finalize(ctx context.Context, cart *entity.Cart) (*entity.Cart, error) {
	cart.Recalculate()

	if cart.CouponCode != "" {
		check, err := s.couponService.Check(ctx, cart.CouponCode, cart)
		if err != nil {
			return nil, err
		}
		if check.Valid {
			cart.Discount = check.Discount
		} else {
			cart.CouponCode = ""
			cart.Discount = 0
		}
		cart.Recalculate()
	}

	if err := s.cartDAO.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) sellableProduct(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	product, err := s.productDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != entity.ProductStatusActive {
		return nil, service.ErrProductNotFound
	}
	return product, nil
}

func (s *cartService) checkStock(product *entity.Product, variantSKU string, quantity int) error {
	if !product.TrackQuantity || product.AllowBackorder {
		return nil
	}
	if product.AvailableQuantity(variantSKU) < quantity {
		return service.ErrOutOfStock
	}
	return nil
}
