package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// UserController handles profile and admin user endpoints
type UserController struct {
	userService    service.UserService
	authMiddleware *middleware.AuthMiddleware
}

// NewUserController creates a new UserController instance
func NewUserController(userService service.UserService, authMiddleware *middleware.AuthMiddleware) *UserController {
	return &UserController{
		userService:    userService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the user routes
func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(c.authMiddleware.Authenticate())
	{
		users.GET("/me", c.Me)
		users.PUT("/me", c.UpdateProfile)
		users.PUT("/me/password", c.ChangePassword)
		users.POST("/me/addresses", c.AddAddress)
		users.PUT("/me/addresses/:index", c.UpdateAddress)
		users.DELETE("/me/addresses/:index", c.RemoveAddress)
	}

	admin := router.Group("/admin/users")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.GET("", c.List)
		admin.GET("/:id", c.GetByID)
		admin.PUT("/:id/status", c.UpdateStatus)
		admin.DELETE("/:id", c.Delete)
	}
}

// Me returns the authenticated user's profile
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[entity.User]
// @Router /api/v1/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(user))
}

// UpdateProfile updates the authenticated user's name and phone
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.ApiResponse[entity.User]
// @Router /api/v1/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req request.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(user, "profile updated"))
}

// ChangePassword verifies the current password and sets a new one
// @Summary Change own password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ChangePasswordRequest true "Password change"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/me/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req request.ChangePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "password changed"))
}

// AddAddress appends a shipping address
// @Summary Add an address
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.AddressRequest true "Address"
// @Success 200 {object} response.ApiResponse[entity.User]
// @Router /api/v1/users/me/addresses [post]
func (c *UserController) AddAddress(ctx *gin.Context) {
	var req request.AddressRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.AddAddress(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(user, "address added"))
}

// UpdateAddress replaces the address at the given index
// @Summary Update an address
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "Address index"
// @Param request body request.AddressRequest true "Address"
// @Success 200 {object} response.ApiResponse[entity.User]
// @Router /api/v1/users/me/addresses/{index} [put]
func (c *UserController) UpdateAddress(ctx *gin.Context) {
	index, ok := indexParam(ctx)
	if !ok {
		return
	}
	var req request.AddressRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateAddress(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, index, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(user, "address updated"))
}

// RemoveAddress deletes the address at the given index
// @Summary Remove an address
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param index path int true "Address index"
// @Success 200 {object} response.ApiResponse[entity.User]
// @Router /api/v1/users/me/addresses/{index} [delete]
func (c *UserController) RemoveAddress(ctx *gin.Context) {
	index, ok := indexParam(ctx)
	if !ok {
		return
	}

	user, err := c.userService.RemoveAddress(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, index)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(user, "address removed"))
}

// List retrieves users with filters (admin)
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param role query string false "Filter by role"
// @Param status query string false "Filter by status"
// @Param search query string false "Match name or email"
// @Success 200 {object} response.ApiResponse[[]entity.User]
// @Router /api/v1/admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	filter := dao.UserFilter{
		Role:   entity.UserRole(ctx.Query("role")),
		Status: entity.UserStatus(ctx.Query("status")),
		Search: ctx.Query("search"),
	}

	users, total, err := c.userService.List(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(users, page, limit, total))
}

// GetByID retrieves one user (admin)
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.ApiResponse[entity.User]
// @Router /api/v1/admin/users/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(user))
}

// UpdateStatus blocks or unblocks an account (admin)
// @Summary Update account status
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body request.UpdateUserStatusRequest true "New status"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/users/{id}/status [put]
func (c *UserController) UpdateStatus(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req request.UpdateUserStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.userService.UpdateStatus(ctx.Request.Context(), id, entity.UserStatus(req.Status)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "status updated"))
}

// Delete soft-deletes a user (admin)
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "user deleted"))
}

func indexParam(ctx *gin.Context) (int, bool) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid address index"))
		return 0, false
	}
	return index, true
}
