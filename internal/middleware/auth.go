package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/security"
)

const (
	// ClaimsKey is the context key for validated token claims
	ClaimsKey = "claims"
	// UserKey is the context key for the authenticated user entity
	UserKey = "current_user"
)

// AuthMiddleware provides authentication middleware
type AuthMiddleware struct {
	jwtProvider *security.JWTProvider
	userDAO     dao.UserDAO
}

// NewAuthMiddleware creates a new AuthMiddleware instance
func NewAuthMiddleware(jwtProvider *security.JWTProvider, userDAO dao.UserDAO) *AuthMiddleware {
	return &AuthMiddleware{
		jwtProvider: jwtProvider,
		userDAO:     userDAO,
	}
}

// Authenticate validates the bearer token, loads the user and rejects
// blocked or deleted accounts
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errMsg := m.claimsFromHeader(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, response.NewError[any](errMsg))
			c.Abort()
			return
		}

		user, err := m.loadUser(c, claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.NewError[any](err.Error()))
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserKey, user)
		c.Next()
	}
}

// OptionalAuth loads the user when a valid token is present but never rejects
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := m.claimsFromHeader(c)
		if claims != nil {
			if user, err := m.loadUser(c, claims); err == nil {
				c.Set(ClaimsKey, claims)
				c.Set(UserKey, user)
			}
		}
		c.Next()
	}
}

// RequireRole checks that the authenticated user has one of the given roles
func (m *AuthMiddleware) RequireRole(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, response.NewError[any]("authentication required"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, response.NewError[any]("insufficient permissions"))
		c.Abort()
	}
}

// RequireAdmin allows admins and super admins
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)
}

func (m *AuthMiddleware) claimsFromHeader(c *gin.Context) (*security.UserClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "authorization header required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, "invalid authorization header format"
	}

	claims, err := m.jwtProvider.ValidateAccessToken(parts[1])
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return nil, "token has expired"
		}
		return nil, "invalid token"
	}
	return claims, ""
}

func (m *AuthMiddleware) loadUser(c *gin.Context, claims *security.UserClaims) (*entity.User, error) {
	userID, err := claims.ObjectID()
	if err != nil {
		return nil, errors.New("invalid token subject")
	}
	user, err := m.userDAO.FindByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		return nil, errors.New("account not found")
	}
	if user.IsBlocked() {
		return nil, errors.New("account is blocked")
	}
	return user, nil
}

// CurrentUser retrieves the authenticated user from context, nil when
// the request is anonymous
func CurrentUser(c *gin.Context) *entity.User {
	if v, exists := c.Get(UserKey); exists {
		if user, ok := v.(*entity.User); ok {
			return user
		}
	}
	return nil
}

// CurrentClaims retrieves the validated token claims from context
func CurrentClaims(c *gin.Context) *security.UserClaims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*security.UserClaims); ok {
			return claims
		}
	}
	return nil
}
