package impl

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
)

// wishlistService implements service.WishlistService
type wishlistService struct {
	wishlistDAO dao.WishlistDAO
	productDAO  dao.ProductDAO
	cartService service.CartService
}

// NewWishlistService creates a new WishlistService instance
func NewWishlistService(wishlistDAO dao.WishlistDAO, productDAO dao.ProductDAO, cartService service.CartService) service.WishlistService {
	return &wishlistService{
		wishlistDAO: wishlistDAO,
		productDAO:  productDAO,
		cartService: cartService,
	}
}

func (s *wishlistService) Get(ctx context.Context, userID primitive.ObjectID) (*entity.Wishlist, error) {
	wishlist, err := s.wishlistDAO.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		wishlist = &entity.Wishlist{User: userID, Items: []entity.WishlistItem{}}
	}
	return wishlist, nil
}

func (s *wishlistService) Add(ctx context.Context, userID primitive.ObjectID, req *request.AddToWishlistRequest) (*entity.Wishlist, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, service.ErrProductNotFound
	}
	product, err := s.productDAO.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != entity.ProductStatusActive {
		return nil, service.ErrProductNotFound
	}

	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wishlist.Contains(productID) {
		return nil, service.ErrWishlistDuplicate
	}

	wishlist.Items = append(wishlist.Items, entity.WishlistItem{
		Product:         productID,
		AddedAt:         time.Now(),
		NotifyOnRestock: req.NotifyOnRestock,
		NotifyOnSale:    req.NotifyOnSale,
	})
	if err := s.wishlistDAO.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (s *wishlistService) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Wishlist, error) {
	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !wishlist.Remove(productID) {
		return nil, service.ErrWishlistNotFound
	}
	if err := s.wishlistDAO.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (s *wishlistService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	wishlist.Items = []entity.WishlistItem{}
	return s.wishlistDAO.Save(ctx, wishlist)
}

func (s *wishlistService) MoveToCart(ctx context.Context, userID primitive.ObjectID, req *request.MoveToCartRequest) (*entity.Cart, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, service.ErrProductNotFound
	}
	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !wishlist.Contains(productID) {
		return nil, service.ErrWishlistNotFound
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	cart, err := s.cartService.AddItem(ctx, userID, &request.AddToCartRequest{
		ProductID: req.ProductID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}

	wishlist.Remove(productID)
	if err := s.wishlistDAO.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return cart, nil
}
