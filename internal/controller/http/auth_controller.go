package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService    service.AuthService
	authMiddleware *middleware.AuthMiddleware
}

// NewAuthController creates a new AuthController instance
func NewAuthController(authService service.AuthService, authMiddleware *middleware.AuthMiddleware) *AuthController {
	return &AuthController{
		authService:    authService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the auth routes
func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", c.Register)
		auth.POST("/login", c.Login)
		auth.POST("/refresh", c.Refresh)
		auth.POST("/logout", c.Logout)
		auth.POST("/logout-all", c.authMiddleware.Authenticate(), c.LogoutAll)
	}
}

// Register handles customer registration
// @Summary Register a new customer account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration request"
// @Success 201 {object} response.ApiResponse[response.AuthResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req request.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	authResp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(authResp, "account created"))
}

// Login handles email/password login
// @Summary Login with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login request"
// @Success 200 {object} response.ApiResponse[response.AuthResponse]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	authResp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(authResp, "login successful"))
}

// Refresh rotates the refresh token and issues a new token pair
// @Summary Refresh the access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token request"
// @Success 200 {object} response.ApiResponse[response.AuthResponse]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req request.RefreshTokenRequest
	if !bindJSON(ctx, &req) {
		return
	}

	authResp, err := c.authService.Refresh(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(authResp, "token refreshed"))
}

// Logout revokes the presented refresh token
// @Summary Logout the current session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token to revoke"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req request.RefreshTokenRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.RefreshToken); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "logged out"))
}

// LogoutAll revokes every refresh token of the authenticated user
// @Summary Logout all sessions
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/auth/logout-all [post]
func (c *AuthController) LogoutAll(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.authService.LogoutAll(ctx.Request.Context(), user.ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "all sessions revoked"))
}
