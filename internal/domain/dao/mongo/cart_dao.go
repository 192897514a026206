package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// cartDAO implements dao.CartDAO using MongoDB. Carts are keyed by user,
// one document per user, upserted on save.
type cartDAO struct {
	*baseDAO[entity.Cart]
}

// NewCartDAO creates a MongoDB-backed CartDAO.
func NewCartDAO(db *mongo.Database) dao.CartDAO {
	return &cartDAO{baseDAO: newBaseDAO[entity.Cart](db, CollCarts)}
}

func (d *cartDAO) FindByUser(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	return d.findOne(ctx, bson.M{"user": userID})
}

func (d *cartDAO) Save(ctx context.Context, cart *entity.Cart) error {
	now := time.Now()
	cart.UpdatedAt = now
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}
	_, err := d.collection.ReplaceOne(ctx,
		bson.M{"user": cart.User}, cart, options.Replace().SetUpsert(true))
	return err
}

func (d *cartDAO) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	return d.deleteOne(ctx, bson.M{"user": userID})
}

// wishlistDAO implements dao.WishlistDAO using MongoDB, same one document
// per user shape as carts.
type wishlistDAO struct {
	*baseDAO[entity.Wishlist]
}

// NewWishlistDAO creates a MongoDB-backed WishlistDAO.
func NewWishlistDAO(db *mongo.Database) dao.WishlistDAO {
	return &wishlistDAO{baseDAO: newBaseDAO[entity.Wishlist](db, CollWishlists)}
}

func (d *wishlistDAO) FindByUser(ctx context.Context, userID primitive.ObjectID) (*entity.Wishlist, error) {
	return d.findOne(ctx, bson.M{"user": userID})
}

func (d *wishlistDAO) Save(ctx context.Context, wishlist *entity.Wishlist) error {
	now := time.Now()
	wishlist.UpdatedAt = now
	if wishlist.CreatedAt.IsZero() {
		wishlist.CreatedAt = now
	}
	if wishlist.Items == nil {
		wishlist.Items = []entity.WishlistItem{}
	}
	_, err := d.collection.ReplaceOne(ctx,
		bson.M{"user": wishlist.User}, wishlist, options.Replace().SetUpsert(true))
	return err
}
