package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/dto/request"
)

// UserService defines the interface for profile and admin user operations
type UserService interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)

	// UpdateProfile updates name and phone
	UpdateProfile(ctx context.Context, id primitive.ObjectID, req *request.UpdateProfileRequest) (*entity.User, error)

	// ChangePassword verifies the current password and sets a new one
	ChangePassword(ctx context.Context, id primitive.ObjectID, req *request.ChangePasswordRequest) error

	// AddAddress appends an address; the first address becomes the default
	AddAddress(ctx context.Context, id primitive.ObjectID, req *request.AddressRequest) (*entity.User, error)

	// UpdateAddress replaces the address at index
	UpdateAddress(ctx context.Context, id primitive.ObjectID, index int, req *request.AddressRequest) (*entity.User, error)

	// RemoveAddress deletes the address at index
	RemoveAddress(ctx context.Context, id primitive.ObjectID, index int) (*entity.User, error)

	// List retrieves users with filtering and pagination (admin)
	List(ctx context.Context, filter dao.UserFilter, page, limit int) ([]*entity.User, int64, error)

	// UpdateStatus blocks or unblocks an account (admin)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.UserStatus) error

	// Delete soft-deletes a user (admin)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
