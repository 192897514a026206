package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem is a saved product with optional restock/price-drop alerts
type WishlistItem struct {
	Product         primitive.ObjectID `bson:"product" json:"product"`
	AddedAt         time.Time          `bson:"added_at" json:"added_at"`
	NotifyOnRestock bool               `bson:"notify_on_restock" json:"notify_on_restock"`
	NotifyOnSale    bool               `bson:"notify_on_sale" json:"notify_on_sale"`
}

// Wishlist is the per-user wishlist (one per user, no duplicate products).
type Wishlist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Items     []WishlistItem     `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Contains reports whether the product is already saved
func (w *Wishlist) Contains(productID primitive.ObjectID) bool {
	for i := range w.Items {
		if w.Items[i].Product == productID {
			return true
		}
	}
	return false
}

// Remove drops the product from the wishlist; reports whether it was present
func (w *Wishlist) Remove(productID primitive.ObjectID) bool {
	for i := range w.Items {
		if w.Items[i].Product == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return true
		}
	}
	return false
}
