package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// CartController handles shopping cart endpoints
type CartController struct {
	cartService    service.CartService
	authMiddleware *middleware.AuthMiddleware
}

// NewCartController creates a new CartController instance
func NewCartController(cartService service.CartService, authMiddleware *middleware.AuthMiddleware) *CartController {
	return &CartController{
		cartService:    cartService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the cart routes
func (c *CartController) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	cart.Use(c.authMiddleware.Authenticate())
	{
		cart.GET("", c.Get)
		cart.POST("/items", c.AddItem)
		cart.PUT("/items", c.UpdateItem)
		cart.DELETE("/items", c.RemoveItem)
		cart.DELETE("", c.Clear)
		cart.GET("/validate", c.Validate)
		cart.POST("/coupon", c.ApplyCoupon)
		cart.DELETE("/coupon", c.RemoveCoupon)
	}
}

// Get returns the caller's cart
// @Summary Get the cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[entity.Cart]
// @Router /api/v1/cart [get]
func (c *CartController) Get(ctx *gin.Context) {
	cart, err := c.cartService.Get(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(cart))
}

// AddItem adds a product line, merging with an existing line
// @Summary Add an item to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.AddToCartRequest true "Item"
// @Success 200 {object} response.ApiResponse[entity.Cart]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/cart/items [post]
func (c *CartController) AddItem(ctx *gin.Context) {
	var req request.AddToCartRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cart, err := c.cartService.AddItem(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(cart, "item added"))
}

// UpdateItem sets the quantity of a cart line
// @Summary Update a cart item
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdateCartItemRequest true "Item and quantity"
// @Success 200 {object} response.ApiResponse[entity.Cart]
// @Router /api/v1/cart/items [put]
func (c *CartController) UpdateItem(ctx *gin.Context) {
	var req request.UpdateCartItemRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cart, err := c.cartService.UpdateItem(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(cart, "item updated"))
}

// RemoveItem removes a cart line
// @Summary Remove a cart item
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.RemoveCartItemRequest true "Item"
// @Success 200 {object} response.ApiResponse[entity.Cart]
// @Router /api/v1/cart/items [delete]
func (c *CartController) RemoveItem(ctx *gin.Context) {
	var req request.RemoveCartItemRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cart, err := c.cartService.RemoveItem(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(cart, "item removed"))
}

// Clear empties the cart
// @Summary Clear the cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[entity.Cart]
// @Router /api/v1/cart [delete]
func (c *CartController) Clear(ctx *gin.Context) {
	cart, err := c.cartService.Clear(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(cart, "cart cleared"))
}

// Validate rechecks every line against the catalog
// @Summary Validate the cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.CartValidation]
// @Router /api/v1/cart/validate [get]
func (c *CartController) Validate(ctx *gin.Context) {
	validation, err := c.cartService.Validate(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(validation))
}

// ApplyCoupon validates a coupon and applies its discount
// @Summary Apply a coupon
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ApplyCouponRequest true "Coupon code"
// @Success 200 {object} response.ApiResponse[entity.Cart]
// @Failure 400 {object} response.ApiResponse[any]
// @Router /api/v1/cart/coupon [post]
func (c *CartController) ApplyCoupon(ctx *gin.Context) {
	var req request.ApplyCouponRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cart, err := c.cartService.ApplyCoupon(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, req.Code)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(cart, "coupon applied"))
}

// RemoveCoupon clears the applied coupon
// @Summary Remove the coupon
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[entity.Cart]
// @Router /api/v1/cart/coupon [delete]
func (c *CartController) RemoveCoupon(ctx *gin.Context) {
	cart, err := c.cartService.RemoveCoupon(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(cart, "coupon removed"))
}
