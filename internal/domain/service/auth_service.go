package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a new customer account
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)

	// Login authenticates a user and returns a token pair
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)

	// Refresh rotates a refresh token into a new token pair
	Refresh(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error)

	// Logout revokes the given refresh token
	Logout(ctx context.Context, refreshToken string) error

	// LogoutAll revokes every refresh token of a user
	LogoutAll(ctx context.Context, userID primitive.ObjectID) error
}
