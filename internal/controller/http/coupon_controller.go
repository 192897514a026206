package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// CouponController handles coupon endpoints
type CouponController struct {
	couponService  service.CouponService
	cartService    service.CartService
	authMiddleware *middleware.AuthMiddleware
}

// NewCouponController creates a new CouponController instance
func NewCouponController(
	couponService service.CouponService,
	cartService service.CartService,
	authMiddleware *middleware.AuthMiddleware,
) *CouponController {
	return &CouponController{
		couponService:  couponService,
		cartService:    cartService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the coupon routes
func (c *CouponController) RegisterRoutes(router *gin.RouterGroup) {
	coupons := router.Group("/coupons")
	coupons.Use(c.authMiddleware.Authenticate())
	{
		coupons.POST("/validate", c.Validate)
	}

	admin := router.Group("/admin/coupons")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.GET("", c.List)
		admin.POST("", c.Create)
		admin.GET("/:id", c.GetByID)
		admin.PUT("/:id", c.Update)
		admin.DELETE("/:id", c.Delete)
	}
}

// Validate checks a coupon code against the caller's cart
// @Summary Validate a coupon code
// @Tags Coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ValidateCouponRequest true "Coupon code"
// @Success 200 {object} response.ApiResponse[response.CouponCheck]
// @Router /api/v1/coupons/validate [post]
func (c *CouponController) Validate(ctx *gin.Context) {
	var req request.ValidateCouponRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cart, err := c.cartService.Get(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	check, err := c.couponService.Check(ctx.Request.Context(), req.Code, cart)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(check))
}

// List returns coupons with pagination
// @Summary List coupons (admin)
// @Tags Coupons
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PagedResponse[entity.Coupon]
// @Router /api/v1/admin/coupons [get]
func (c *CouponController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	coupons, total, err := c.couponService.List(ctx.Request.Context(), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(coupons, page, limit, total))
}

// Create creates a coupon
// @Summary Create a coupon (admin)
// @Tags Coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateCouponRequest true "Coupon details"
// @Success 201 {object} response.ApiResponse[entity.Coupon]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/admin/coupons [post]
func (c *CouponController) Create(ctx *gin.Context) {
	var req request.CreateCouponRequest
	if !bindJSON(ctx, &req) {
		return
	}

	coupon, err := c.couponService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(coupon, "coupon created"))
}

// GetByID returns a coupon by its ID
// @Summary Get a coupon (admin)
// @Tags Coupons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} response.ApiResponse[entity.Coupon]
// @Router /api/v1/admin/coupons/{id} [get]
func (c *CouponController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	coupon, err := c.couponService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(coupon))
}

// Update updates a coupon
// @Summary Update a coupon (admin)
// @Tags Coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body request.UpdateCouponRequest true "Fields to update"
// @Success 200 {object} response.ApiResponse[entity.Coupon]
// @Router /api/v1/admin/coupons/{id} [put]
func (c *CouponController) Update(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateCouponRequest
	if !bindJSON(ctx, &req) {
		return
	}

	coupon, err := c.couponService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(coupon, "coupon updated"))
}

// Delete deletes a coupon
// @Summary Delete a coupon (admin)
// @Tags Coupons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/coupons/{id} [delete]
func (c *CouponController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.couponService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "coupon deleted"))
}
