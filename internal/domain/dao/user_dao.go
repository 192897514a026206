// Package dao defines the data-access interfaces implemented by the MongoDB
// layer. Services depend on these interfaces only.
package dao

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// UserFilter narrows admin user listings
type UserFilter struct {
	Role   entity.UserRole
	Status entity.UserStatus
	Search string // matches name or email
}

// UserDAO provides access to user accounts
type UserDAO interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.UserStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, filter UserFilter, page, limit int) ([]*entity.User, int64, error)

	// IncrementOrderStats bumps total_orders by one and total_spent by amount.
	IncrementOrderStats(ctx context.Context, id primitive.ObjectID, amount float64) error
}

// RefreshTokenDAO provides access to persisted refresh tokens
type RefreshTokenDAO interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	RevokeByToken(ctx context.Context, token string) error
	RevokeAllByUser(ctx context.Context, userID primitive.ObjectID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
