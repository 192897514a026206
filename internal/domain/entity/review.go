package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewStatus represents the moderation state of a review
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is a customer product review. At most one review exists per
// (user, product) pair; only approved reviews feed the product rating.
type Review struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User               primitive.ObjectID `bson:"user" json:"user"`
	Product            primitive.ObjectID `bson:"product" json:"product"`
	Rating             int                `bson:"rating" json:"rating"`
	Title              string             `bson:"title,omitempty" json:"title,omitempty"`
	Comment            string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Status             ReviewStatus       `bson:"status" json:"status"`
	IsVerifiedPurchase bool               `bson:"is_verified_purchase" json:"is_verified_purchase"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}
