package entity

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWishlistContains(t *testing.T) {
	saved := primitive.NewObjectID()
	w := &Wishlist{Items: []WishlistItem{{Product: saved}}}

	if !w.Contains(saved) {
		t.Error("Contains() = false for a saved product")
	}
	if w.Contains(primitive.NewObjectID()) {
		t.Error("Contains() = true for an unknown product")
	}
}

func TestWishlistRemove(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	w := &Wishlist{Items: []WishlistItem{{Product: first}, {Product: second}}}

	if !w.Remove(first) {
		t.Fatal("Remove() = false for a saved product")
	}
	if len(w.Items) != 1 || w.Items[0].Product != second {
		t.Errorf("Items = %+v, want only the second product", w.Items)
	}

	if w.Remove(first) {
		t.Error("Remove() = true for an already removed product")
	}
}
