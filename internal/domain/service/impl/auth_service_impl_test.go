package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/security"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

func testJWTProvider() *security.JWTProvider {
	return security.NewJWTProvider(&config.JWTConfig{
		Secret:               "test-secret-test-secret-test-secret",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "velora-test",
	})
}

func setupAuthService(t *testing.T) (service.AuthService, *mocks.MockUserDAO, *mocks.MockRefreshTokenDAO) {
	t.Helper()
	userDAO := mocks.NewMockUserDAO()
	tokenDAO := mocks.NewMockRefreshTokenDAO()
	svc := NewAuthService(userDAO, tokenDAO, testJWTProvider(), security.NewPasswordHasher(4))
	return svc, userDAO, tokenDAO
}

func TestAuthServiceRegister(t *testing.T) {
	svc, userDAO, _ := setupAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &request.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", resp.User.Email)
	}
	if resp.User.Role != entity.RoleCustomer {
		t.Errorf("role = %q, want customer", resp.User.Role)
	}
	if resp.User.Password == "password123" {
		t.Error("password stored in plaintext")
	}

	stored, err := userDAO.FindByEmail(ctx, "alice@example.com")
	if err != nil || stored == nil {
		t.Fatalf("user not persisted: %v", err)
	}
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	req := &request.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, service.ErrUserAlreadyExists) {
		t.Fatalf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	svc, userDAO, _ := setupAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &request.RegisterRequest{
		Name: "Bob", Email: "bob@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(ctx, &request.LoginRequest{Email: "bob@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	user, _ := userDAO.FindByEmail(ctx, "bob@example.com")
	if user.LastLoginAt == nil {
		t.Error("LastLoginAt not recorded")
	}
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &request.RegisterRequest{
		Name: "Bob", Email: "bob@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(ctx, &request.LoginRequest{Email: "bob@example.com", Password: "wrong"})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), &request.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthServiceLoginBlockedAccount(t *testing.T) {
	svc, userDAO, _ := setupAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &request.RegisterRequest{
		Name: "Eve", Email: "eve@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, _ := userDAO.FindByEmail(ctx, "eve@example.com")
	user.Status = entity.UserStatusBlocked

	_, err := svc.Login(ctx, &request.LoginRequest{Email: "eve@example.com", Password: "password123"})
	if !errors.Is(err, service.ErrAccountBlocked) {
		t.Fatalf("err = %v, want ErrAccountBlocked", err)
	}
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	svc, _, tokenDAO := setupAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &request.RegisterRequest{
		Name: "Carol", Email: "carol@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, &request.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	old, _ := tokenDAO.FindByToken(ctx, resp.RefreshToken)
	if old != nil && old.IsValid() {
		t.Error("presented token still valid after rotation")
	}

	// the rotated-out token must not be exchangeable again
	if _, err := svc.Refresh(ctx, &request.RefreshTokenRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestAuthServiceRefreshGarbageToken(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Refresh(context.Background(), &request.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestAuthServiceLogout(t *testing.T) {
	svc, _, tokenDAO := setupAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &request.RegisterRequest{
		Name: "Dan", Email: "dan@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(ctx, resp.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	stored, _ := tokenDAO.FindByToken(ctx, resp.RefreshToken)
	if stored != nil && stored.IsValid() {
		t.Error("token still valid after logout")
	}
}

func TestAuthServiceLogoutAll(t *testing.T) {
	svc, _, tokenDAO := setupAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &request.RegisterRequest{
		Name: "Frank", Email: "frank@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := svc.Login(ctx, &request.LoginRequest{Email: "frank@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.LogoutAll(ctx, resp.User.ID); err != nil {
		t.Fatalf("LogoutAll: %v", err)
	}
	for _, token := range []string{resp.RefreshToken, second.RefreshToken} {
		stored, _ := tokenDAO.FindByToken(ctx, token)
		if stored != nil && stored.IsValid() {
			t.Error("token still valid after LogoutAll")
		}
	}
}
