package impl

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/security"
)

// authService implements service.AuthService
type authService struct {
	userDAO        dao.UserDAO
	tokenDAO       dao.RefreshTokenDAO
	jwtProvider    *security.JWTProvider
	passwordHasher *security.PasswordHasher
}

// NewAuthService creates a new AuthService instance
func NewAuthService(
	userDAO dao.UserDAO,
	tokenDAO dao.RefreshTokenDAO,
	jwtProvider *security.JWTProvider,
	passwordHasher *security.PasswordHasher,
) service.AuthService {
	return &authService{
		userDAO:        userDAO,
		tokenDAO:       tokenDAO,
		jwtProvider:    jwtProvider,
		passwordHasher: passwordHasher,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userDAO.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, service.ErrUserAlreadyExists
	}

	hashed, err := s.passwordHasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     req.Name,
		Email:    email,
		Password: hashed,
		Phone:    req.Phone,
		Role:     entity.RoleCustomer,
		Status:   entity.UserStatusActive,
	}
	if err := s.userDAO.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.userDAO.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !s.passwordHasher.Verify(req.Password, user.Password) {
		return nil, service.ErrInvalidCredentials
	}
	if user.IsBlocked() {
		return nil, service.ErrAccountBlocked
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userDAO.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error) {
	if _, err := s.jwtProvider.ValidateRefreshToken(req.RefreshToken); err != nil {
		return nil, service.ErrInvalidToken
	}

	stored, err := s.tokenDAO.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || !stored.IsValid() {
		return nil, service.ErrInvalidToken
	}

	user, err := s.userDAO.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	if user.IsBlocked() {
		return nil, service.ErrAccountBlocked
	}

	// rotate: the presented token is single use
	if err := s.tokenDAO.RevokeByToken(ctx, req.RefreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenDAO.RevokeByToken(ctx, refreshToken)
}

func (s *authService) LogoutAll(ctx context.Context, userID primitive.ObjectID) error {
	return s.tokenDAO.RevokeAllByUser(ctx, userID)
}

func (s *authService) issueTokens(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	accessToken, err := s.jwtProvider.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, expiresAt, err := s.jwtProvider.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenDAO.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwtProvider.GetAccessTokenDuration(),
	}, nil
}
